package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestLoginRequestRoundTrip(t *testing.T) {
	req := NewLoginRequest("ana", "tijeras")
	assert.Equal(t, "ana", StringField(req, FieldUsuario))
	assert.Equal(t, "tijeras", StringField(req, FieldPassword))
	assert.Equal(t, "", StringField(req, FieldToken))
}

func TestStringField_NonStringValues(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{"n": 3, "b": true})
	assert.NoError(t, err)
	assert.Equal(t, "", StringField(s, "n"))
	assert.Equal(t, "", StringField(s, "b"))
	assert.Equal(t, "", StringField(nil, "n"))
}

func TestStructField(t *testing.T) {
	outer := &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldToken:   structpb.NewStringValue("t"),
		FieldUsuario: structpb.NewStructValue(StringStruct(map[string]string{FieldID: "a-1"})),
	}}
	assert.Equal(t, "a-1", StringField(StructField(outer, FieldUsuario), FieldID))
	assert.Nil(t, StructField(outer, FieldToken))
	assert.Nil(t, StructField(nil, FieldToken))
}
