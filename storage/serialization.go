// Copyright 2025 Poiesic Systems
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


package storage

import (
	"github.com/poiesic/sanctum/core"
)

// MarshalIndexRecord serializes an IndexRecord to bytes.
func MarshalIndexRecord(record *core.IndexRecord) []byte {
	buf := make([]byte, core.IndexRecordMUS.Size(*record))
	core.IndexRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalIndexRecord deserializes an IndexRecord from bytes.
func UnmarshalIndexRecord(data []byte) (*core.IndexRecord, error) {
	record, _, err := core.IndexRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalTokenRecord serializes a TokenRecord to bytes. The raw value is
// never serialized, only its ciphertext.
func MarshalTokenRecord(record *core.TokenRecord) []byte {
	buf := make([]byte, core.TokenRecordMUS.Size(*record))
	core.TokenRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalTokenRecord deserializes a TokenRecord from bytes. RawValue is
// empty on the result; recovering it requires decrypting CipherText.
func UnmarshalTokenRecord(data []byte) (*core.TokenRecord, error) {
	record, _, err := core.TokenRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
