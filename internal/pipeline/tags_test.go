package pipeline

import (
	"reflect"
	"testing"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "Pacing", []string{"Pacing"}},
		{"multiple with padding", "Pacing; Content ;Pacing", []string{"Pacing", "Content", "Pacing"}},
		{"empty pieces dropped", ";; Pacing ;;", []string{"Pacing"}},
		{"empty field", "", nil},
		{"only delimiters", ";;;", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitTags(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTags(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCountTags(t *testing.T) {
	lists := [][]string{
		SplitTags("Pacing; Content ;Pacing"),
		SplitTags("Vocabulary; Content"),
	}
	got := CountTags(lists)
	want := []TagCount{
		{Tag: "Pacing", Count: 2},
		{Tag: "Content", Count: 2},
		{Tag: "Vocabulary", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountTags = %v, want %v", got, want)
	}
}

func TestCountTagsTiesKeepFirstSeenOrder(t *testing.T) {
	lists := [][]string{{"Zeta", "Alpha"}, {"Alpha", "Zeta"}}
	got := CountTags(lists)
	want := []TagCount{
		{Tag: "Zeta", Count: 2},
		{Tag: "Alpha", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CountTags = %v, want %v", got, want)
	}
}

func TestCountTagsEmpty(t *testing.T) {
	if got := CountTags(nil); len(got) != 0 {
		t.Errorf("CountTags(nil) = %v, want empty", got)
	}
	if got := CountTags([][]string{nil, {}}); len(got) != 0 {
		t.Errorf("CountTags(empty lists) = %v, want empty", got)
	}
}
