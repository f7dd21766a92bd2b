package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	puts       []*s3.PutObjectInput
	bodies     [][]byte
	batches    [][]string
	deleteErr  error
	failedKeys map[string]bool
}

func (f *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts = append(f.puts, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) DeleteObjects(_ context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	keys := make([]string, len(in.Delete.Objects))
	for i, obj := range in.Delete.Objects {
		keys[i] = aws.ToString(obj.Key)
	}
	f.batches = append(f.batches, keys)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}

	out := &s3.DeleteObjectsOutput{}
	for _, key := range keys {
		if f.failedKeys[key] {
			out.Errors = append(out.Errors, types.Error{
				Key:     aws.String(key),
				Code:    aws.String("AccessDenied"),
				Message: aws.String("denied"),
			})
		}
	}
	return out, nil
}

func (f *fakeClient) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, nil
}

type fakePresigner struct{}

func (fakePresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	url := fmt.Sprintf("https://%s.s3.test/%s?X-Amz-Expires=%d",
		aws.ToString(in.Bucket), aws.ToString(in.Key), int(opts.Expires.Seconds()))
	return &v4.PresignedHTTPRequest{URL: url, Method: "GET"}, nil
}

func TestPutObject(t *testing.T) {
	client := &fakeClient{}
	store := NewWithClient(client, fakePresigner{}, "rooms", "docs/")

	require.NoError(t, store.PutObject(context.Background(), "u1/a.pdf", []byte("%PDF-1.4"), "application/pdf"))

	require.Len(t, client.puts, 1)
	in := client.puts[0]
	assert.Equal(t, "rooms", aws.ToString(in.Bucket))
	assert.Equal(t, "docs/u1/a.pdf", aws.ToString(in.Key))
	assert.Equal(t, "application/pdf", aws.ToString(in.ContentType))
	assert.EqualValues(t, 8, aws.ToInt64(in.ContentLength))
	assert.Equal(t, []byte("%PDF-1.4"), client.bodies[0])
}

func TestRemoveObjects_Batches(t *testing.T) {
	client := &fakeClient{}
	store := NewWithClient(client, fakePresigner{}, "rooms", "")

	keys := make([]string, 2*maxBatchSize+5)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
	}
	require.NoError(t, store.RemoveObjects(context.Background(), keys))

	require.Len(t, client.batches, 3)
	assert.Len(t, client.batches[0], maxBatchSize)
	assert.Len(t, client.batches[1], maxBatchSize)
	assert.Len(t, client.batches[2], 5)
	assert.Equal(t, "k2004", client.batches[2][4])
}

func TestRemoveObjects_ReportsEveryFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("per-key errors", func(t *testing.T) {
		client := &fakeClient{failedKeys: map[string]bool{"b": true, "c": true}}
		store := NewWithClient(client, fakePresigner{}, "rooms", "")

		err := store.RemoveObjects(ctx, []string{"a", "b", "c"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delete b: AccessDenied: denied")
		assert.Contains(t, err.Error(), "delete c: AccessDenied: denied")
	})

	t.Run("failed batch does not stop the next", func(t *testing.T) {
		boom := errors.New("boom")
		client := &fakeClient{deleteErr: boom}
		store := NewWithClient(client, fakePresigner{}, "rooms", "")

		keys := make([]string, maxBatchSize+1)
		for i := range keys {
			keys[i] = fmt.Sprintf("k%d", i)
		}
		err := store.RemoveObjects(ctx, keys)
		assert.ErrorIs(t, err, boom)
		assert.Len(t, client.batches, 2)
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := &fakeClient{}
		store := NewWithClient(client, fakePresigner{}, "rooms", "")

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := store.RemoveObjects(cancelled, []string{"a"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, client.batches)
	})
}

func TestRemoveObjects_NoKeys(t *testing.T) {
	client := &fakeClient{}
	store := NewWithClient(client, fakePresigner{}, "rooms", "")
	assert.NoError(t, store.RemoveObjects(context.Background(), nil))
	assert.Empty(t, client.batches)
}

func TestSignedURL(t *testing.T) {
	store := NewWithClient(&fakeClient{}, fakePresigner{}, "rooms", "docs/")

	url, err := store.SignedURL(context.Background(), "u1/a.pdf", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://rooms.s3.test/docs/u1/a.pdf?X-Amz-Expires=900", url)
}
