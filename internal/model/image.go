package model

import (
	"context"
	"strings"
	"time"
)

// ImageStore defines persistence operations for images.
type ImageStore interface {
	Create(ctx context.Context, image Image) (Image, error)
	GetByID(ctx context.Context, id string) (Image, error)
	GetByIDs(ctx context.Context, ids []string) ([]Image, error)
	AppendChild(ctx context.Context, parentID, childID string) error
	RemoveChild(ctx context.Context, parentID, childID string) error
	UpdateDescription(ctx context.Context, id, description string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// Image represents a stored image and its place in the provenance graph.
//
// ProcessHistory holds ancestor ids root-first, excluding the image itself;
// an empty history marks a lineage root. ChildIDs holds ids of images
// derived directly from this one.
type Image struct {
	ID             string
	UserID         string
	CreatedAt      time.Time
	Width          int
	Height         int
	Format         Format
	Description    string
	ProcessingTime int
	Process        string
	ProcessHistory []string
	ChildIDs       []string
	BlobKey        string
}

// Parent returns the immediate parent id, or "" for a lineage root.
func (i Image) Parent() string {
	if len(i.ProcessHistory) == 0 {
		return ""
	}
	return i.ProcessHistory[len(i.ProcessHistory)-1]
}

// Format enumerates accepted image formats. Stored lower-case.
type Format string

const (
	FormatJPG  Format = "jpg"
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
	FormatGIF  Format = "gif"
)

// ParseFormat matches a format name case-insensitively and normalizes it
// to its canonical lower-case form.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJPG, FormatJPEG, FormatPNG, FormatTIFF, FormatGIF:
		return f, true
	default:
		return "", false
	}
}

// DefaultDescription is stored when a request carries no description.
const DefaultDescription = "None"

// CreateImageParams is a validated image-creation request.
type CreateImageParams struct {
	ID             string
	UserID         string
	Data           []byte
	Width          int
	Height         int
	Format         Format
	Description    string
	ProcessingTime int
	Process        string
	ParentID       string
	HasParent      bool
}
