package pb

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/zrma/trollsmile/command"
)

// Field names of an encoded error report.
const (
	FieldAuthor  = "author"
	FieldIconURL = "icon_url"
	FieldTitle   = "title"
	FieldColor   = "color"
)

// EncodePayloads turns text into string values and error reports into structs.
func EncodePayloads(payloads []command.Payload) (*structpb.ListValue, error) {
	values := make([]*structpb.Value, 0, len(payloads))
	for _, p := range payloads {
		switch v := p.(type) {
		case command.Text:
			values = append(values, structpb.NewStringValue(string(v)))
		case *command.ErrorReport:
			values = append(values, structpb.NewStructValue(&structpb.Struct{
				Fields: map[string]*structpb.Value{
					FieldAuthor:  structpb.NewStringValue(v.Author.Name),
					FieldIconURL: structpb.NewStringValue(v.Author.IconURL),
					FieldTitle:   structpb.NewStringValue(v.Title),
					FieldColor:   structpb.NewStringValue(v.Color),
				},
			}))
		default:
			return nil, fmt.Errorf("unsupported payload %T", p)
		}
	}
	return &structpb.ListValue{Values: values}, nil
}

func DecodePayloads(list *structpb.ListValue) ([]command.Payload, error) {
	payloads := make([]command.Payload, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		switch kind := v.GetKind().(type) {
		case *structpb.Value_StringValue:
			payloads = append(payloads, command.Text(kind.StringValue))
		case *structpb.Value_StructValue:
			fields := kind.StructValue.GetFields()
			payloads = append(payloads, &command.ErrorReport{
				Author: command.Author{
					Name:    fields[FieldAuthor].GetStringValue(),
					IconURL: fields[FieldIconURL].GetStringValue(),
				},
				Title: fields[FieldTitle].GetStringValue(),
				Color: fields[FieldColor].GetStringValue(),
			})
		default:
			return nil, fmt.Errorf("payload %d: unexpected kind %T", i, kind)
		}
	}
	return payloads, nil
}
