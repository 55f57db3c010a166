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

// fudgecat is a command-line tool for encoding and decoding Fudge
// messages: it turns a YAML field list into a wire-format envelope,
// turns a wire-format envelope back into YAML, and can walk an
// envelope's stream elements without printing field values, for
// inspecting malformed or oversized input.
package main

import "github.com/fudgemsg/fudge-go/cmd/fudgecat/cmd"

func main() {
	cmd.Execute()
}
