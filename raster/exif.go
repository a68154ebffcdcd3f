package raster

import (
	exif "github.com/dsoprea/go-exif/v3"
)

// exifOrientation reads the orientation tag of IFD0. Missing or broken EXIF
// data is not an error for resampling, ok is false then.
func exifOrientation(data []byte) (o Orientation, ok bool) {
	defer func() {
		// go-exif reports some malformed segments by panicking
		if r := recover(); r != nil {
			o, ok = 0, false
		}
	}()
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		return 0, false
	}
	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return 0, false
	}
	for _, tag := range tags {
		if tag.TagName != `Orientation` {
			continue
		}
		switch v := tag.Value.(type) {
		case []uint16:
			if len(v) > 0 && Orientation(v[0]).Valid() {
				return Orientation(v[0]), true
			}
		case uint16:
			if Orientation(v).Valid() {
				return Orientation(v), true
			}
		}
	}
	return 0, false
}
