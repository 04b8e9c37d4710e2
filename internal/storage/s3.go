package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"halloffame-backend/internal/config"
)

// S3Service 프로필/연혁 이미지용 PAR(pre-authenticated request) 발급기.
// 업로드용 단기 PUT URL과 조회용 장기 GET URL을 쌍으로 만든다.
type S3Service struct {
	presign      *s3.PresignClient
	bucket       string
	uploadExpiry time.Duration
	readExpiry   time.Duration
}

// UploadPAR 발급 결과
type UploadPAR struct {
	ObjectKey string            `json:"object_key"`
	UploadURL string            `json:"upload_url"` // 단기 PUT URL
	ReadURL   string            `json:"read_url"`   // 장기 GET URL
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	ExpiresAt time.Time         `json:"expires_at"` // 업로드 URL 만료 시각
}

// NewS3Service S3Service 생성
func NewS3Service(cfg *config.S3Config) (*S3Service, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Service{
		presign:      s3.NewPresignClient(client),
		bucket:       cfg.BucketName,
		uploadExpiry: cfg.UploadExpiry,
		readExpiry:   cfg.ReadExpiry,
	}, nil
}

// BuildObjectKey 업로드 객체 키 생성 (uuid + 원본 확장자)
func BuildObjectKey(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return "uploads/" + uuid.NewString() + ext
}

// IssueUploadPAR 업로드 PAR 발급: 단기 PUT URL + 장기 GET URL
func (s *S3Service) IssueUploadPAR(ctx context.Context, fileName, contentType string) (*UploadPAR, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := BuildObjectKey(fileName)

	putReq, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.uploadExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign PUT: %w", err)
	}

	getReq, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.readExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign GET: %w", err)
	}

	par := &UploadPAR{
		ObjectKey: key,
		UploadURL: putReq.URL,
		ReadURL:   getReq.URL,
		Method:    putReq.Method,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
		ExpiresAt: time.Now().Add(s.uploadExpiry),
	}

	for k, v := range putReq.SignedHeader {
		if len(v) > 0 {
			par.Headers[k] = v[0]
		}
	}

	return par, nil
}
