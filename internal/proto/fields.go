package proto

import "google.golang.org/protobuf/types/known/structpb"

// Field names shared by both ends of AuthService.
const (
	FieldUsuario  = "usuario"
	FieldPassword = "password"
	FieldToken    = "token"
	FieldID       = "id"
	FieldNombre   = "nombre"
	FieldEmail    = "email"
	FieldRol      = "rol"
	FieldTelefono = "telefono"
)

// NewLoginRequest builds the Login request message.
func NewLoginRequest(usuario, password string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldUsuario:  structpb.NewStringValue(usuario),
		FieldPassword: structpb.NewStringValue(password),
	}}
}

// StringField returns s[key] when it holds a string, otherwise "".
func StringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}

// StructField returns s[key] when it holds a nested struct, otherwise nil.
func StructField(s *structpb.Struct, key string) *structpb.Struct {
	if s == nil {
		return nil
	}
	return s.GetFields()[key].GetStructValue()
}

// StringStruct builds a Struct whose values are all strings.
func StringStruct(fields map[string]string) *structpb.Struct {
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for k, v := range fields {
		out.Fields[k] = structpb.NewStringValue(v)
	}
	return out
}
