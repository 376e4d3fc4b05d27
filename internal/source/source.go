// Package source classifies dataset references as local paths or S3 URIs.
package source

import (
	"net/url"
	"strings"
)

// Kind identifies where a dataset reference points.
type Kind int

const (
	// KindLocal is a path on the local filesystem.
	KindLocal Kind = iota
	// KindS3 is an s3:// object storage URI.
	KindS3
)

func (k Kind) String() string {
	if k == KindS3 {
		return "s3"
	}
	return "local"
}

// Descriptor is the classification of a single dataset reference.
// It is created by Classify and never mutated afterwards.
type Descriptor struct {
	// Raw is the reference exactly as the user supplied it.
	Raw  string
	Kind Kind
	// Bucket and Key are populated for S3 references.
	Bucket string
	Key    string
}

// IsS3 reports whether the descriptor refers to object storage.
func (d Descriptor) IsS3() bool { return d.Kind == KindS3 }

// Classify inspects a reference string and reports whether it is an S3 URI
// or a local path. It never fails: anything that does not parse as an
// s3:// URI (empty strings, schemeless paths, malformed URIs) is treated as
// a local path. Whether that path actually exists is DuckDB's concern at
// load time, not ours.
func Classify(reference string) Descriptor {
	d := Descriptor{Raw: reference, Kind: KindLocal}

	u, err := url.Parse(reference)
	if err != nil || !strings.EqualFold(u.Scheme, "s3") {
		return d
	}

	d.Kind = KindS3
	d.Bucket = u.Host
	d.Key = strings.TrimPrefix(u.Path, "/")
	return d
}
