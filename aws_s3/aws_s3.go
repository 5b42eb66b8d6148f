package aws_s3

import (
	"bytes"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/settings"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

var settingsData = settings.GetSettings()
var singleAwsInstance *AWSS3

type AWSS3 struct {
	sess *session.Session
}

func (a *AWSS3) UploadFile(key string, file []byte, contentType string) (string, error) {
	svc := s3.New(a.sess)
	_, err := svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(settingsData.AWS_BUCKET),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// GetFileURL returns a presigned URL valid for 15 minutes
func (a *AWSS3) GetFileURL(key string) (string, error) {
	svc := s3.New(a.sess)
	req, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(settingsData.AWS_BUCKET),
		Key:    aws.String(key),
	})
	return req.Presign(15 * time.Minute)
}

func (a *AWSS3) DeleteFile(key string) error {
	svc := s3.New(a.sess)
	_, err := svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(settingsData.AWS_BUCKET),
		Key:    aws.String(key),
	})
	return err
}

func NewAWSS3() *AWSS3 {
	if singleAwsInstance == nil {
		sess := session.Must(session.NewSession(&aws.Config{
			Region: aws.String(settingsData.AWS_REGION),
		}))
		singleAwsInstance = &AWSS3{
			sess: sess,
		}
	}
	return singleAwsInstance
}
