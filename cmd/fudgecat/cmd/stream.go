// Copyright 2024 The fudge-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
)

// openInput returns the bytes at path, or def's bytes if path is "" or
// "-" (def is normally a command's InOrStdin()). When compress is set
// the bytes are read through an LZ4 frame reader first.
func openInput(path string, def io.Reader) ([]byte, error) {
	r := def
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if compress {
		r = lz4.NewReader(r)
	}
	return io.ReadAll(r)
}

// openOutput returns a writer for path (truncating/creating it), or def
// if path is "" or "-" (def is normally a command's OutOrStdout()),
// plus a close func the caller must call exactly once. When compress is
// set the writer is an LZ4 frame writer over the underlying
// file/def, and closing it flushes the frame trailer before closing
// any underlying file.
func openOutput(path string, def io.Writer) (io.Writer, func() error, error) {
	w := def
	var underlying io.Closer
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, err
		}
		w = f
		underlying = f
	}
	if !compress {
		if underlying == nil {
			return w, func() error { return nil }, nil
		}
		return w, underlying.Close, nil
	}
	lzw := lz4.NewWriter(w)
	return lzw, func() error {
		if err := lzw.Close(); err != nil {
			return err
		}
		if underlying != nil {
			return underlying.Close()
		}
		return nil
	}, nil
}
