package tstack

import(
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/tiff"
)

// A Loader enumerates and decodes input files into capture-ordered
// frames. Ordering is by EXIF DateTimeOriginal when the files carry
// it, falling back to filename, which is what burst and timelapse
// rigs name by anyway.
type Loader struct {
	entries []loadEntry
}

type loadEntry struct {
	name  string
	taken time.Time
	img   image.Image
}

func NewLoader() Loader {
	return Loader{entries: []loadEntry{}}
}

func (l *Loader)Load(args ...string) error {
	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				if err := l.Load(filepath.Join(arg, content.Name())); err != nil {
					return err
				}
			}

		default: // is a file, load it
			if err := l.LoadFile(arg); err != nil {
				return fmt.Errorf("loadfile %s: %v", arg, err)
			}
		}
	}

	return nil
}

func (l *Loader)LoadFile(filename string) error {
	var img image.Image
	var err error

	reader, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer reader.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		img, err = png.Decode(reader)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(reader)
	case ".tif", ".tiff":
		img, err = tiff.Decode(reader)
	default:
		return nil // not an image, skip it
	}
	if err != nil {
		return fmt.Errorf("decode '%s': %v", filename, err)
	}

	l.entries = append(l.entries, loadEntry{
		name:  filename,
		taken: captureTime(filename),
		img:   img,
	})

	return nil
}

// captureTime digs the capture timestamp out of EXIF. Missing or
// unparseable EXIF is fine; those files sort by name.
func captureTime(filename string) time.Time {
	reader, err := os.Open(filename)
	if err != nil {
		return time.Time{}
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return time.Time{}
	}

	taken, err := ex.DateTime()
	if err != nil {
		return time.Time{}
	}
	return taken
}

// Frames sorts the loaded images into capture order and flattens them
// into indexed frame buffers.
func (l *Loader)Frames() []Frame {
	sort.Slice(l.entries, func(i, j int) bool {
		ei, ej := l.entries[i], l.entries[j]
		if !ei.taken.Equal(ej.taken) {
			if ei.taken.IsZero() != ej.taken.IsZero() {
				return ej.taken.IsZero() // timestamped files first
			}
			return ei.taken.Before(ej.taken)
		}
		return ei.name < ej.name
	})

	frames := make([]Frame, 0, len(l.entries))
	for i, e := range l.entries {
		frames = append(frames, FrameFromImage(i, e.img))
		log.WithFields(log.Fields{"index":i, "file":e.name}).Debug("frame ordered")
	}
	return frames
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}
