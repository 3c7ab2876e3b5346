// Package storage implements binary object storage for chat and CMS
// attachments on top of MongoDB GridFS: store an object, get a public URL
// back.
package storage

import (
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bucketName = "uploads"

var ErrObjectNotFound = errors.New("object not found")

// AttachmentStore stores uploaded files in a GridFS bucket and serves them
// back by id.
type AttachmentStore struct {
	bucket  *gridfs.Bucket
	baseURL string
}

// NewAttachmentStore creates the uploads bucket. baseURL is the public
// prefix returned to clients, e.g. "/uploads".
func NewAttachmentStore(db *mongo.Database, baseURL string) (*AttachmentStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &AttachmentStore{bucket: bucket, baseURL: baseURL}, nil
}

// Put stores the object and returns its id and public URL.
func (s *AttachmentStore) Put(filename string, r io.Reader) (string, string, error) {
	id, err := s.bucket.UploadFromStream(filename, r)
	if err != nil {
		return "", "", fmt.Errorf("upload object: %w", err)
	}
	hex := id.Hex()
	return hex, s.baseURL + "/" + hex, nil
}

// Open returns a read stream for the object with the given id. The caller
// owns Close.
func (s *AttachmentStore) Open(id string) (io.ReadCloser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrObjectNotFound
	}

	stream, err := s.bucket.OpenDownloadStream(oid)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("open object: %w", err)
	}
	return stream, nil
}
