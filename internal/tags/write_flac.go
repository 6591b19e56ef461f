package tags

import (
	"fmt"
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

func writeFLAC(path string, meta Meta) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	cmtIdx := -1
	var existing *flacvorbis.MetaDataBlockVorbisComment
	for i, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			cmtIdx = i
			existing, err = flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				return fmt.Errorf("parse vorbis comment: %w", err)
			}
			break
		}
	}

	cmts := flacvorbis.New()
	if existing != nil {
		cmts.Vendor = existing.Vendor
	}
	replace := map[string]string{
		flacvorbis.FIELD_TITLE:  meta.Title,
		flacvorbis.FIELD_ARTIST: meta.Artist,
		flacvorbis.FIELD_ALBUM:  meta.Album,
	}
	if existing != nil {
		for _, c := range existing.Comments {
			key, _, _ := strings.Cut(c, "=")
			if replace[strings.ToUpper(key)] != "" {
				continue
			}
			cmts.Comments = append(cmts.Comments, c)
		}
	}
	for _, key := range []string{flacvorbis.FIELD_TITLE, flacvorbis.FIELD_ARTIST, flacvorbis.FIELD_ALBUM} {
		if v := replace[key]; v != "" {
			if err := cmts.Add(key, v); err != nil {
				return fmt.Errorf("add %s: %w", strings.ToLower(key), err)
			}
		}
	}

	block := cmts.Marshal()
	if cmtIdx >= 0 {
		f.Meta[cmtIdx] = &block
	} else {
		f.Meta = append(f.Meta, &block)
	}

	if len(meta.Cover) > 0 {
		kept := make([]*flac.MetaDataBlock, 0, len(f.Meta))
		for _, b := range f.Meta {
			if b.Type != flac.Picture {
				kept = append(kept, b)
			}
		}
		f.Meta = kept

		pic, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front Cover",
			meta.Cover,
			detectMimeType(meta.Cover),
		)
		if err != nil {
			return fmt.Errorf("create picture: %w", err)
		}
		picBlock := pic.Marshal()
		f.Meta = append(f.Meta, &picBlock)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}
