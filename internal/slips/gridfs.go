package slips

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxFileSize is the upload cap for payment slips.
const MaxFileSize = 5 << 20 // 5 MB

var (
	ErrBadFileType = errors.New("only jpg, png and pdf slips are accepted")
	ErrNotFound    = errors.New("slip file not found")
)

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// Store keeps uploaded payment slips in a GridFS bucket and hands out
// public URLs pointing at the download route.
type Store struct {
	bucket  *gridfs.Bucket
	baseURL string
}

func NewStore(db *mongo.Database, publicBaseURL string) (*Store, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("slips"))
	if err != nil {
		return nil, fmt.Errorf("open slips bucket: %w", err)
	}
	return &Store{
		bucket:  bucket,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Save stores the file under "{orderId}-{unixmillis}{ext}" and returns
// the public URL to put on the order record.
func (s *Store) Save(orderID, originalName string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExts[ext] {
		return "", ErrBadFileType
	}

	filename := fmt.Sprintf("%s-%d%s", orderID, time.Now().UnixMilli(), ext)
	if _, err := s.bucket.UploadFromStream(filename, src); err != nil {
		return "", fmt.Errorf("upload slip: %w", err)
	}

	return s.baseURL + "/uploads/" + filename, nil
}

// Open streams a previously stored slip by filename.
func (s *Store) Open(filename string) (*gridfs.DownloadStream, error) {
	stream, err := s.bucket.OpenDownloadStreamByName(filename)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open slip %s: %w", filename, err)
	}
	return stream, nil
}

// ContentType maps a stored filename to its response content type.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}
