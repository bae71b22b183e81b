package images

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/tokri/pkg/storage"
)

// objectStrategy writes the payload to a storage disk (local filesystem or
// S3) and stores the serving URL on the record. The record insert and the
// object write are not transactional; Discard removes the object when the
// insert fails afterwards.
type objectStrategy struct {
	name string
	disk storage.Disk
}

func (s *objectStrategy) Name() string { return s.name }

func (s *objectStrategy) Ingest(_ context.Context, up Upload) (Stored, error) {
	key := objectName(up.Filename)

	if err := s.disk.Put(key, up.Data); err != nil {
		return Stored{}, fmt.Errorf("images: store %s upload: %w", s.name, err)
	}

	return Stored{Ref: s.disk.URL(key), key: key}, nil
}

func (s *objectStrategy) Discard(_ context.Context, st Stored) error {
	if st.key == "" {
		return nil
	}
	return s.disk.Delete(st.key)
}
