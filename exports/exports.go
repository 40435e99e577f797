package main

// #include <stdlib.h>
import "C"
import (
	"context"
	"encoding/json"

	"github.com/redraskal/vlr-dissect/dissect"
	"github.com/redraskal/vlr-dissect/source"
	"github.com/rs/zerolog"
)

func marshalToString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{\"error\":\"something went wrong during json Marshal\"}"
	}
	return string(b)
}

func convertForExport(v any) string {
	type export struct {
		Data any `json:"data"`
	}
	return marshalToString(export{
		Data: v,
	})
}

func convertErrorForExport(err error) string {
	type export struct {
		Error string `json:"error"`
	}
	return marshalToString(export{
		Error: err.Error(),
	})
}

//export vlr_read
func vlr_read(input *C.char) *C.char {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	path := C.GoString(input)
	f, err := source.Open(context.Background(), path, source.Options{})
	if err != nil {
		return C.CString(convertErrorForExport(err))
	}
	defer f.Close()
	p, err := dissect.NewPage(f)
	if err != nil {
		return C.CString(convertErrorForExport(err))
	}
	m := p.Match()
	if len(m.Games) == 0 {
		return C.CString(convertErrorForExport(dissect.ErrNoGames))
	}
	return C.CString(convertForExport(m))
}

func main() {}
