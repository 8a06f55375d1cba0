package badger

import "fmt"

// Key prefixes for different data types
const (
	indexRecordPrefix = "idxrec"
	tokenRecordPrefix = "tokrec"
)

// makeIndexRecordKey generates a key for a chunk record.
// Format: prefix:tenant:project:chunkID
func makeIndexRecordKey(tenant, project, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:%s", indexRecordPrefix, tenant, project, id))
}

// makeIndexScopePrefix generates the iteration prefix for a tenant/project scope.
func makeIndexScopePrefix(tenant, project string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:", indexRecordPrefix, tenant, project))
}

// makeTokenRecordKey generates a key for a pseudonymization token record.
// Format: prefix:docKey:token
func makeTokenRecordKey(docKey, token string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", tokenRecordPrefix, docKey, token))
}

// makeTokenScopePrefix generates the iteration prefix for a document's tokens.
func makeTokenScopePrefix(docKey string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", tokenRecordPrefix, docKey))
}
