package client

import (
	"bytes"
	"context"
	"strings"

	storage_go "github.com/supabase-community/storage-go"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/common"
)

// ObjectStore uploads originals and resolves their public URLs.
type ObjectStore interface {
	// Upload stores data under bucket/key. An existing object is not
	// overwritten.
	Upload(ctx context.Context, s models.Session, bucket, key, contentType string, data []byte) error
	// PublicURL returns the complete public URL of bucket/key.
	PublicURL(bucket, key string) string
}

// SupabaseStorage implements ObjectStore with storage-go.
type SupabaseStorage struct {
	storageURL string
	apiKey     string
}

func NewSupabaseStorage(projectURL, anonKey string) *SupabaseStorage {
	return &SupabaseStorage{
		storageURL: strings.TrimRight(projectURL, "/") + "/storage/v1",
		apiKey:     anonKey,
	}
}

func (st *SupabaseStorage) client(token string) *storage_go.Client {
	return storage_go.NewClient(st.storageURL, token, map[string]string{common.APIKeyHeaderName: st.apiKey})
}

func (st *SupabaseStorage) Upload(ctx context.Context, s models.Session, bucket, key, contentType string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if contentType == "" {
		contentType = common.DefaultVideoMIMEType
	}
	upsert := false
	_, err := st.client(s.AccessToken).UploadFile(bucket, key, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	return mapError(err)
}

func (st *SupabaseStorage) PublicURL(bucket, key string) string {
	return st.client(st.apiKey).GetPublicUrl(bucket, key).SignedURL
}
