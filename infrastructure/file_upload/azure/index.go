package azure

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"facepass.io/infrastructure/file_upload/types"
	"facepass.io/infrastructure/logger"
	_azblob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	azblob_sas "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	azblob "github.com/Azure/azure-storage-blob-go/azblob"
)

type AzureBlobSignedURLService struct {
	AccountName   string
	ContainerName string
	AccountKey    string
}

func (azurlservice *AzureBlobSignedURLService) GenerateDownloadURL(fileName string) (*string, error) {
	return azurlservice.generateSignedURL(fileName, types.SignedURLPermission{Read: true})
}

func (azurlservice *AzureBlobSignedURLService) GenerateUploadURL(fileName string) (*string, error) {
	return azurlservice.generateSignedURL(fileName, types.SignedURLPermission{Write: true})
}

func (azurlservice *AzureBlobSignedURLService) generateSignedURL(fileName string, permission types.SignedURLPermission) (*string, error) {
	if permission.Read == permission.Write {
		return nil, errors.New("permission must be either read or write")
	}
	_credential, err := _azblob.NewSharedKeyCredential(azurlservice.AccountName, azurlservice.AccountKey)
	if err != nil {
		logger.Error("error generated _azblob shared key credential", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	blobURL, err := azurlservice.blockBlobURL(fileName)
	if err != nil {
		return nil, err
	}

	sasQueryParams, err := azblob_sas.BlobSignatureValues{
		Protocol:      azblob_sas.ProtocolHTTPS,
		StartTime:     time.Now().UTC(),
		ExpiryTime:    time.Now().UTC().Add(5 * time.Minute), // url is valid for only 5 mins
		Permissions:   (&azblob_sas.BlobPermissions{Read: permission.Read, Write: permission.Write, Delete: permission.Delete}).String(),
		ContainerName: azurlservice.ContainerName,
		BlobName:      fileName,
	}.SignWithSharedKey(_credential)
	if err != nil {
		logger.Error("error blob signature values", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	sasURL := fmt.Sprintf("%s?%s", blobURL.String(), sasQueryParams.Encode())
	return &sasURL, nil
}

// UploadBytes writes a blob directly from the server. Used for enrollment
// captures which never transit through client-held signed URLs.
func (azurlservice *AzureBlobSignedURLService) UploadBytes(fileName string, payload []byte) error {
	blobURL, err := azurlservice.blockBlobURL(fileName)
	if err != nil {
		return err
	}
	_, err = azblob.UploadBufferToBlockBlob(context.TODO(), payload, *blobURL, azblob.UploadToBlockBlobOptions{})
	if err != nil {
		logger.Error("error uploading blob", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "fileName",
			Data: fileName,
		})
		return err
	}
	return nil
}

func (azurlservice *AzureBlobSignedURLService) DeleteFile(fileName string) error {
	blobURL, err := azurlservice.blockBlobURL(fileName)
	if err != nil {
		return err
	}
	_, err = blobURL.Delete(context.TODO(), azblob.DeleteSnapshotsOptionInclude, azblob.BlobAccessConditions{})
	if err != nil {
		logger.Error("error deleting blob", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	return nil
}

func (azurlservice *AzureBlobSignedURLService) CheckFileExists(fileName string) (bool, error) {
	blobURL, err := azurlservice.blockBlobURL(fileName)
	if err != nil {
		return false, err
	}
	_, err = blobURL.GetProperties(context.TODO(), azblob.BlobAccessConditions{}, azblob.ClientProvidedKeyOptions{})
	if err != nil {
		if serr, ok := err.(azblob.StorageError); ok {
			if serr.ServiceCode() == azblob.ServiceCodeBlobNotFound {
				return false, nil
			}
		}
		return false, err
	}
	return true, nil
}

func (azurlservice *AzureBlobSignedURLService) blockBlobURL(fileName string) (*azblob.BlockBlobURL, error) {
	credential, err := azblob.NewSharedKeyCredential(azurlservice.AccountName, azurlservice.AccountKey)
	if err != nil {
		logger.Error("error generated azblob shared key credential", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	URL, err := url.Parse(fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s", azurlservice.AccountName, azurlservice.ContainerName, fileName))
	if err != nil {
		logger.Error("error parsing blob url", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	blobURL := azblob.NewBlockBlobURL(*URL, azblob.NewPipeline(credential, azblob.PipelineOptions{}))
	return &blobURL, nil
}
