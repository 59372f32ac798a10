package utils

import (
	"bytes"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3-compatible object storage settings come from the environment.
func getS3Client() (*s3.S3, string, string, error) {
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	bucket := os.Getenv("S3_BUCKET")
	endpoint := os.Getenv("S3_ENDPOINT")
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "us-east-1"
	}
	if accessKey == "" || secretKey == "" || bucket == "" || endpoint == "" {
		return nil, "", "", fmt.Errorf("object storage is not configured")
	}

	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	}))
	return s3.New(sess), bucket, endpoint, nil
}

// UploadFileToS3 stores a file under folder/fileName and returns its public URL.
func UploadFileToS3(file []byte, fileName, folder, contentType string) (string, error) {
	s3Client, bucket, endpoint, err := getS3Client()
	if err != nil {
		return "", err
	}

	filePath := fmt.Sprintf("%s/%s", folder, fileName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s/%s", endpoint, bucket, filePath), nil
}
