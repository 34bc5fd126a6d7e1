package helper

import (
	"path/filepath"
	"strings"
)

// allowedMimeTypes maps a lower-case file extension to the only content type
// accepted for it.
var allowedMimeTypes = map[string]string{
	// images
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
	"svg":  "image/svg+xml",

	// documents
	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"csv":  "text/csv",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",

	// audio
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"flac": "audio/flac",
	"ogg":  "audio/ogg",
	"m4a":  "audio/mp4",

	// video
	"mp4":  "video/mp4",
	"mkv":  "video/x-matroska",
	"mov":  "video/quicktime",
	"avi":  "video/x-msvideo",
	"flv":  "video/x-flv",
	"webm": "video/webm",

	// archives
	"zip": "application/zip",
	"rar": "application/vnd.rar",
	"7z":  "application/x-7z-compressed",
	"tar": "application/x-tar",
	"gz":  "application/gzip",

	// disk images
	"iso":  "application/x-iso9660-image",
	"vmdk": "application/x-vmdk",
	"vhd":  "application/x-vhd",

	// databases and backups
	"bak": "application/octet-stream",
	"sql": "application/sql",
	"db":  "application/x-sqlite3",

	// scientific data
	"hdf5": "application/x-hdf5",
	"nc":   "application/x-netcdf",
	"mat":  "application/x-matlab-data",

	// design and 3D
	"psd":   "image/vnd.adobe.photoshop",
	"ai":    "application/postscript",
	"indd":  "application/x-indesign",
	"blend": "application/x-blender",
	"fbx":   "application/octet-stream",
	"obj":   "application/octet-stream",
}

// FileExtension returns the lower-case extension of filename without the dot.
func FileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// GetMimeTypeFromExtension looks up the accepted content type for filename.
func GetMimeTypeFromExtension(filename string) (string, bool) {
	mime, ok := allowedMimeTypes[FileExtension(filename)]
	return mime, ok
}

// MatchesExtension reports whether contentType is the accepted type for the
// extension of filename, ignoring case.
func MatchesExtension(filename, contentType string) bool {
	expected, ok := GetMimeTypeFromExtension(filename)
	return ok && strings.EqualFold(expected, contentType)
}
