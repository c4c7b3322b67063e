package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/waxsealmail/go-waxseal-server/global"
	"github.com/waxsealmail/go-waxseal-server/types"
	"github.com/waxsealmail/go-waxseal-server/util"
)

type S3Service struct {
	env *types.Environment
}

func NewS3Service(env *types.Environment) *S3Service {
	return &S3Service{
		env: env,
	}
}

// UploadDataURL decodes an embedded data-URL image and uploads it to the
// bucket, returning the object URL
func (s3s *S3Service) UploadDataURL(bucket, path string, dataURL string) (string, error) {
	mimeType, content, pErr := util.ParseDataURL(dataURL)
	if pErr != nil {
		return "", pErr
	}
	if len(content) == 0 {
		return "", types.ErrBadRequest
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ioReader := bytes.NewReader(content)
	_, uErr := s3s.env.S3Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(path),
		Body:        ioReader,
		ContentType: aws.String(mimeType),
	})
	if uErr != nil {
		global.Logger.Log(uErr.Error(), "failed to upload image", path)
		return "", uErr
	}
	return fmt.Sprintf("s3://%s/%s", bucket, path), nil
}

// DeleteObject removes an object at the specific bucket and path
func (s3s *S3Service) DeleteObject(bucket, path string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s3s.env.S3Client.DeleteObject(ctx, input)
	if err != nil {
		var noKey *s3Types.NoSuchKey
		var apiErr *smithy.GenericAPIError
		if errors.As(err, &noKey) {
			global.Logger.Log("warning", "object does not exist", "objectKey", path)
			return types.ErrNotFound
		} else if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "AccessDenied":
				global.Logger.Log("warning", "access denied", "objectKey", path)
				return types.ErrNotAuthorized
			}
			global.Logger.Log("error", "error deleting object", "error", err)
			return err
		}
	}
	return nil
}
