package utils

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func SaveFile(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	filename := fmt.Sprintf("%s%s", GetUUID(), filepath.Ext(header.Filename))
	filePath := fmt.Sprintf("%s/%s", folder, filename)
	out, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	_, err = io.Copy(out, file)
	if err != nil {
		return "", err
	}

	return filename, nil
}

// CreateThumb writes a resized copy of <folder>/<id><ext> as
// <folder>/thumb/<id><ext>.
func CreateThumb(id, folder, ext string, width, height int) {
	src, err := imaging.Open(filepath.Join(folder, id+ext))
	if err != nil {
		log.Printf("Thumbnail open error for %s: %v", id, err)
		return
	}

	thumb := imaging.Fit(src, width, height, imaging.Lanczos)

	thumbDir := filepath.Join(folder, "thumb")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		log.Printf("Thumbnail dir error: %v", err)
		return
	}

	if err := imaging.Save(thumb, filepath.Join(thumbDir, id+ext)); err != nil {
		log.Printf("Thumbnail save error for %s: %v", id, err)
	}
}

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}
