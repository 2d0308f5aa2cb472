package domain

// ArchiveEntry is a single row of an archive listing: the path as recorded
// in the container, the stored size in bytes, and whether the entry is a
// directory. Entries are an immutable snapshot; engines never mutate them.
// @Description One entry of an uploaded archive listing
type ArchiveEntry struct {
	Path        string `json:"path" yaml:"path" validate:"required,min=1,max=8192" example:"Photos/IMG 2024.jpg"`
	Size        int64  `json:"size" yaml:"size" validate:"min=0" example:"204800"`
	IsDirectory bool   `json:"isDirectory" yaml:"isDirectory" example:"false"`
}

// FileRef points at a single file inside a listing, used for the
// largest-file stat.
type FileRef struct {
	Path string `json:"path" example:"Photos/IMG 2024.jpg"`
	Size int64  `json:"size" example:"204800"`
}
