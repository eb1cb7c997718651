package db

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
)

// loadJSON parses a whole JSON file into dst. A missing file leaves dst
// untouched, so absent collections start out empty.
func loadJSON(path string, dst interface{}) error {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(buf, dst)
}

// saveJSON serializes src and replaces the target file wholesale. The
// write goes through a temporary file and a rename, so readers never
// observe a truncated document.
func saveJSON(path string, src interface{}) (err error) {
	buf, err := json.Marshal(src)
	if err != nil {
		return
	}

	tmp, err := ioutil.TempFile(filepath.Dir(path), ".write-*")
	if err != nil {
		return
	}
	_, err = tmp.Write(buf)
	if err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}
	if err != nil {
		os.Remove(tmp.Name())
		return
	}
	err = os.Rename(tmp.Name(), path)
	if err != nil {
		os.Remove(tmp.Name())
	}
	return
}

// clone deep-copies src into dst through a JSON round trip. The
// collections are small enough that this beats getting manual copies
// wrong.
func clone(dst, src interface{}) error {
	buf, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, dst)
}
