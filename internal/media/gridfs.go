package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// GridFSStore implements Store on top of MongoDB GridFS. The returned reference
// is the hex ObjectID of the stored file.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

// NewGridFSStore creates a Store over the given mongo database
func NewGridFSStore(db *mongo.Database) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, fmt.Errorf("failed to open gridfs bucket: %w", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

// Save streams the blob into GridFS and returns its reference
func (s *GridFSStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	id := primitive.NewObjectID()
	stream, err := s.bucket.OpenUploadStreamWithID(id, filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(stream, r); err != nil {
		stream.Close()
		return "", err
	}
	if err := stream.Close(); err != nil {
		return "", err
	}
	return id.Hex(), nil
}

// Open returns a reader over the stored blob plus its original filename
func (s *GridFSStore) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, "", fmt.Errorf("invalid media ID format: %w", err)
	}
	stream, err := s.bucket.OpenDownloadStream(objID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	filename := stream.GetFile().Name
	return stream, filename, nil
}

// Delete removes the stored blob
func (s *GridFSStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid media ID format: %w", err)
	}
	if err := s.bucket.Delete(objID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
