package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/go-mp3"

	"github.com/moffa90/go-wt2003s/protocol"
)

// TrackExt is the file extension the device plays.
const TrackExt = ".mp3"

// bytesPerSample is the size of one decoded stereo 16-bit sample frame.
const bytesPerSample = 4

// Track is one addressable file in the medium's root directory.
type Track struct {
	// Number is the value passed to player.PlayTrackByName
	Number uint16

	// Name is the file name, e.g. "0007.mp3"
	Name string

	// Path is the file path relative to the scanned root (or absolute
	// when scanned with Scan)
	Path string

	// Size is the file size in bytes
	Size int64

	// SampleRate is the decoded sample rate in Hz (0 if probing failed)
	SampleRate int

	// Duration is the playing time (0 if probing failed or unknown)
	Duration time.Duration

	// Err is the probe error, if the file could not be decoded
	Err error
}

// Catalog lists the tracks found in a medium's root directory.
type Catalog struct {
	// Root is the scanned directory ("" for ScanFS)
	Root string

	// Tracks is sorted by Number
	Tracks []*Track

	// Skipped holds file names that do not follow the NNNN.mp3 convention
	Skipped []string
}

// Scan catalogs the directory at root, typically a mounted SD card.
//
// Example:
//
//	cat, err := catalog.Scan("/media/sdcard")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, t := range cat.Tracks {
//	    fmt.Printf("%s %v\n", t.Name, t.Duration)
//	}
func Scan(root string) (*Catalog, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	cat, err := ScanFS(os.DirFS(root))
	if err != nil {
		return nil, err
	}

	cat.Root = root
	for _, t := range cat.Tracks {
		t.Path = filepath.Join(root, t.Name)
	}
	return cat, nil
}

// ScanFS catalogs the root of fsys. Subdirectories are ignored; the device
// only addresses files in its root directory by name.
func ScanFS(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	cat := &Catalog{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		number, ok := ParseTrackName(name)
		if !ok {
			cat.Skipped = append(cat.Skipped, name)
			continue
		}

		track := &Track{Number: number, Name: name, Path: name}
		if info, err := entry.Info(); err == nil {
			track.Size = info.Size()
		}
		track.SampleRate, track.Duration, track.Err = probe(fsys, name)

		cat.Tracks = append(cat.Tracks, track)
	}

	sort.Slice(cat.Tracks, func(i, j int) bool {
		return cat.Tracks[i].Number < cat.Tracks[j].Number
	})
	sort.Strings(cat.Skipped)

	return cat, nil
}

// probe decodes the MP3 headers to find its sample rate and duration.
func probe(fsys fs.FS, name string) (int, time.Duration, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	rate := decoder.SampleRate()
	length := decoder.Length()
	if rate <= 0 || length < 0 {
		// Not seekable: the length is unknown.
		return rate, 0, nil
	}

	samples := length / bytesPerSample
	return rate, time.Duration(samples) * time.Second / time.Duration(rate), nil
}

// ParseTrackName maps a file name like "0007.mp3" to its track number.
// The base name must be exactly four decimal digits; the extension is
// matched case-insensitively.
func ParseTrackName(name string) (uint16, bool) {
	ext := path.Ext(name)
	if !strings.EqualFold(ext, TrackExt) {
		return 0, false
	}

	base := strings.TrimSuffix(name, ext)
	if len(base) != protocol.TrackNameDigits {
		return 0, false
	}

	var n uint16
	for _, c := range base {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint16(c-'0')
	}
	return n, true
}

// TrackFileName returns the file name the device plays for track n.
func TrackFileName(n uint16) string {
	return protocol.ZeroPad(n) + TrackExt
}

// Lookup returns the track with the given number.
func (c *Catalog) Lookup(n uint16) (*Track, bool) {
	i := sort.Search(len(c.Tracks), func(i int) bool {
		return c.Tracks[i].Number >= n
	})
	if i < len(c.Tracks) && c.Tracks[i].Number == n {
		return c.Tracks[i], true
	}
	return nil, false
}

// Missing returns the numbers between 1 and the highest track that have no
// file. Play-by-name requests for them are silently ignored by the device.
func (c *Catalog) Missing() []uint16 {
	if len(c.Tracks) == 0 {
		return nil
	}

	var missing []uint16
	last := c.Tracks[len(c.Tracks)-1].Number
	for n := uint16(1); n < last; n++ {
		if _, ok := c.Lookup(n); !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// TotalDuration sums the durations of all probed tracks.
func (c *Catalog) TotalDuration() time.Duration {
	var total time.Duration
	for _, t := range c.Tracks {
		total += t.Duration
	}
	return total
}
