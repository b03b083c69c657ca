package checksum

import (
	"reflect"
	"testing"
)

func TestSum(t *testing.T) {
	// sha256("")
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != empty {
		t.Errorf("Sum(nil) = %s", got)
	}
	if String("abc") != Sum([]byte("abc")) {
		t.Error("String and Sum disagree")
	}
}

func TestChanged(t *testing.T) {
	prev := map[string]string{"a.md": "1", "b.md": "2", "gone.md": "3"}
	cur := map[string]string{"a.md": "1", "b.md": "9", "new.md": "4"}

	got := Changed(prev, cur)
	want := []string{"b.md", "new.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Changed = %v, want %v", got, want)
	}
	if got := Changed(nil, nil); got != nil {
		t.Errorf("Changed(nil, nil) = %v", got)
	}
}
