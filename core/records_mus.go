package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

// Hand-written MUS serializers for the records persisted to storage.
// Field order is part of the stored format; append new fields at the end.
var (
	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
	float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)

	// IndexRecordMUS serializes IndexRecord values.
	IndexRecordMUS mus.Serializer[IndexRecord] = indexRecordSer{}

	// TokenRecordMUS serializes TokenRecord values.
	TokenRecordMUS mus.Serializer[TokenRecord] = tokenRecordSer{}
)

type indexRecordSer struct{}

func (indexRecordSer) Marshal(r IndexRecord, bs []byte) (n int) {
	n = ord.String.Marshal(r.ID, bs)
	n += ord.String.Marshal(r.Content, bs[n:])
	n += ord.String.Marshal(r.Source, bs[n:])
	n += ord.String.Marshal(r.Tenant, bs[n:])
	n += ord.String.Marshal(r.Department, bs[n:])
	n += ord.String.Marshal(r.ProjectID, bs[n:])
	n += ord.String.Marshal(string(r.Classification), bs[n:])
	n += ord.String.Marshal(string(r.Visibility), bs[n:])
	n += ord.String.Marshal(r.OwnerUserID, bs[n:])
	n += stringSliceMUS.Marshal(r.GroupIDs, bs[n:])
	n += float32SliceMUS.Marshal(r.Vector, bs[n:])
	return n
}

func (indexRecordSer) Unmarshal(bs []byte) (r IndexRecord, n int, err error) {
	var m int
	if r.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if r.Content, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.Source, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.Tenant, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.Department, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.ProjectID, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	var s string
	if s, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	r.Classification = Classification(s)
	if s, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	r.Visibility = Visibility(s)
	if r.OwnerUserID, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.GroupIDs, m, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.Vector, m, err = float32SliceMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	return
}

func (indexRecordSer) Size(r IndexRecord) (n int) {
	n = ord.String.Size(r.ID)
	n += ord.String.Size(r.Content)
	n += ord.String.Size(r.Source)
	n += ord.String.Size(r.Tenant)
	n += ord.String.Size(r.Department)
	n += ord.String.Size(r.ProjectID)
	n += ord.String.Size(string(r.Classification))
	n += ord.String.Size(string(r.Visibility))
	n += ord.String.Size(r.OwnerUserID)
	n += stringSliceMUS.Size(r.GroupIDs)
	n += float32SliceMUS.Size(r.Vector)
	return n
}

func (s indexRecordSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type tokenRecordSer struct{}

func (tokenRecordSer) Marshal(r TokenRecord, bs []byte) (n int) {
	n = ord.String.Marshal(string(r.Type), bs)
	n += ord.String.Marshal(r.CipherText, bs[n:])
	n += ord.String.Marshal(r.Token, bs[n:])
	// RawValue is deliberately not serialized: only the ciphertext is
	// allowed to reach storage.
	return n
}

func (tokenRecordSer) Unmarshal(bs []byte) (r TokenRecord, n int, err error) {
	var m int
	var s string
	if s, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	r.Type = PIIType(s)
	if r.CipherText, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if r.Token, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	return
}

func (tokenRecordSer) Size(r TokenRecord) (n int) {
	n = ord.String.Size(string(r.Type))
	n += ord.String.Size(r.CipherText)
	n += ord.String.Size(r.Token)
	return n
}

func (s tokenRecordSer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}
