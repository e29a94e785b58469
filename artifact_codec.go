package sentimen

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

func readArtifact(fsys fs.FS, name string, v interface{}) error {
	file, err := fsys.Open(name)
	if err != nil {
		return &ArtifactLoadError{Name: name, Err: err}
	}
	defer file.Close()

	if err := decoderFor(name, file)(v); err != nil {
		return &ArtifactLoadError{Name: name, Err: err}
	}
	return nil
}

func decoderFor(name string, r io.Reader) func(interface{}) error {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return json.NewDecoder(r).Decode
	case ".gob":
		return gob.NewDecoder(r).Decode
	default:
		return func(interface{}) error {
			return fmt.Errorf("unknown artifact format %q", path.Ext(name))
		}
	}
}

// WriteArtifact saves a ClassifierArtifact or VectorizerArtifact to p. The
// encoding follows the extension: .json or .gob.
func WriteArtifact(p string, v interface{}) error {
	switch v.(type) {
	case ClassifierArtifact, *ClassifierArtifact, VectorizerArtifact, *VectorizerArtifact:
	default:
		return fmt.Errorf("sentimen: cannot write %T as an artifact", v)
	}

	if err := os.MkdirAll(filepath.Dir(p), os.ModePerm); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	switch strings.ToLower(filepath.Ext(p)) {
	case ".json":
		enc := json.NewEncoder(tmp)
		enc.SetIndent("", "  ")
		err = enc.Encode(v)
	case ".gob":
		err = gob.NewEncoder(tmp).Encode(v)
	default:
		err = fmt.Errorf("sentimen: unknown artifact format %q", filepath.Ext(p))
	}
	if err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}
