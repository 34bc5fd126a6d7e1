package dto

// MultipartUploadRequestDTO asks the service to open a multipart upload.
type MultipartUploadRequestDTO struct {
	Filename      string `json:"filename" validate:"required,min=3,max=200,safe_filename,known_extension" example:"backup-2025.zip"`
	FileSizeBytes int64  `json:"fileSizeBytes" validate:"required,min=5242880,max=107374182400" example:"1073741824"`
	ContentType   string `json:"contentType" validate:"required,content_type,extension_mime=Filename" example:"application/zip"`
}

type PartInfoResponseDTO struct {
	PartNumber   int32  `json:"partNumber" example:"1"`
	PresignedURL string `json:"presignedUrl"`
}

// MultipartUploadResponseDTO is what a client needs to push the parts:
// the object key, the store's upload id and one signed URL per part.
type MultipartUploadResponseDTO struct {
	Key      string                `json:"key" example:"alice/2025/03/3f1c..._backup-2025.zip"`
	UploadID string                `json:"uploadId"`
	URLs     []PartInfoResponseDTO `json:"urls"`
}

type CompletedPartDTO struct {
	PartNumber int32  `json:"partNumber" validate:"min=1,max=10000" example:"1"`
	ETag       string `json:"eTag" validate:"required,min=32,max=100" example:"\"5d41402abc4b2a76b9719d911017c592\""`
}

// CompleteUploadRequestDTO is the client's manifest of uploaded parts.
// Part numbers are neither deduplicated nor checked for gaps.
type CompleteUploadRequestDTO struct {
	Key      string             `json:"key" validate:"required,min=3,max=1024"`
	UploadID string             `json:"uploadId" validate:"required,min=5,max=1024"`
	Parts    []CompletedPartDTO `json:"parts" validate:"required,min=1,max=10000,dive"`
}

type LoginResponseDTO struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn" example:"3600"`
}
