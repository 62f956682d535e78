package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"civicsync/internal/treestore/core"
)

// fakeAPI is an in-memory stand-in for the S3 client surface.
type fakeAPI struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeAPI) PutObject(_ context.Context, in *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[*in.Key] = body
	return &awss3.PutObjectOutput{}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, in *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &awss3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestSetGetRoundtrip(t *testing.T) {
	ctx := context.Background()
	fake := &fakeAPI{}
	store := &Store{client: fake, bucket: "civicsync"}

	in := map[string]map[string]int{"jane-doe": {"Union Support": 1}}
	if err := store.SetSubtree(ctx, "/politician_issues", in); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := fake.objects["politician_issues.json"]; !ok {
		t.Fatalf("expected object politician_issues.json, have %v", fake.objects)
	}

	var out map[string]map[string]int
	if err := store.GetSubtree(ctx, "politician_issues", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out["jane-doe"]["Union Support"] != 1 {
		t.Fatalf("unexpected subtree %+v", out)
	}
}

func TestKeyPrefix(t *testing.T) {
	fake := &fakeAPI{}
	store := &Store{client: fake, bucket: "civicsync", prefix: "trees/"}
	if err := store.SetSubtree(context.Background(), "/politicians", map[string]any{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := fake.objects["trees/politicians.json"]; !ok {
		t.Fatalf("expected prefixed key, have %v", fake.objects)
	}
}

func TestGetMissing(t *testing.T) {
	store := &Store{client: &fakeAPI{}, bucket: "civicsync"}
	var out map[string]any
	err := store.GetSubtree(context.Background(), "/absent", &out)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutErrorWrapped(t *testing.T) {
	fake := &fakeAPI{putErr: errors.New("bucket gone")}
	store := &Store{client: fake, bucket: "civicsync"}
	err := store.SetSubtree(context.Background(), "/p", map[string]any{})
	if err == nil || !errors.Is(err, fake.putErr) {
		t.Fatalf("expected wrapped put error, got %v", err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for missing bucket")
	}
}
