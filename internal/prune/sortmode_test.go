package prune

import (
	"io/fs"
	"testing"
	"time"
)

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		input  string
		want   SortMode
		wantOK bool
	}{
		{input: "mtime", want: SortByModTime, wantOK: true},
		{input: "MTIME", want: SortByModTime, wantOK: true},
		{input: "atime", want: SortByAccessTime, wantOK: true},
		{input: "ctime", want: SortByChangeTime, wantOK: true},
		{input: "CTime", want: SortByChangeTime, wantOK: true},
		{input: "created", want: SortByChangeTime, wantOK: false},
		{input: "", want: SortByChangeTime, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSortMode(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseSortMode(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSortMode_String(t *testing.T) {
	tests := []struct {
		mode SortMode
		want string
	}{
		{SortByModTime, "mtime"},
		{SortByAccessTime, "atime"},
		{SortByChangeTime, "ctime"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// stubFileInfo is a minimal fs.FileInfo for timestamp selection tests.
type stubFileInfo struct {
	modTime time.Time
}

func (i stubFileInfo) Name() string       { return "stub" }
func (i stubFileInfo) Size() int64        { return 0 }
func (i stubFileInfo) Mode() fs.FileMode  { return 0 }
func (i stubFileInfo) ModTime() time.Time { return i.modTime }
func (i stubFileInfo) IsDir() bool        { return false }
func (i stubFileInfo) Sys() any           { return nil }

func TestSortMode_Timestamp(t *testing.T) {
	mtime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	atime := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	ctime := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	info := stubFileInfo{modTime: mtime}
	stat := &StatData{Atime: atime, Ctime: ctime}

	if got := SortByModTime.Timestamp(info, stat); !got.Equal(mtime) {
		t.Errorf("mtime Timestamp() = %v, want %v", got, mtime)
	}
	if got := SortByAccessTime.Timestamp(info, stat); !got.Equal(atime) {
		t.Errorf("atime Timestamp() = %v, want %v", got, atime)
	}
	if got := SortByChangeTime.Timestamp(info, stat); !got.Equal(ctime) {
		t.Errorf("ctime Timestamp() = %v, want %v", got, ctime)
	}
}

func TestSortMode_Timestamp_EpochFallback(t *testing.T) {
	info := stubFileInfo{modTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	want := time.Unix(0, 0)

	// Without stat data, atime and ctime degrade to the epoch.
	if got := SortByAccessTime.Timestamp(info, nil); !got.Equal(want) {
		t.Errorf("atime Timestamp(nil stat) = %v, want epoch", got)
	}
	if got := SortByChangeTime.Timestamp(info, nil); !got.Equal(want) {
		t.Errorf("ctime Timestamp(nil stat) = %v, want epoch", got)
	}
	// mtime never needs stat data.
	if got := SortByModTime.Timestamp(info, nil); !got.Equal(info.modTime) {
		t.Errorf("mtime Timestamp(nil stat) = %v, want %v", got, info.modTime)
	}
}
