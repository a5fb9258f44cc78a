package core

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"
)

// alphabet is used by Gensym.
var alphabet = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Gensym makes a random string of the given length.  Handy for field
// instance and document ids.
func Gensym(n int) string {
	bs := make([]byte, n)
	for i := 0; i < len(bs); i++ {
		bs[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(bs)
}

// Canonicalize round-trips x through JSON so that maps and slices end
// up as map[string]interface{} and []interface{} no matter where they
// came from (YAML parsers in particular like to produce other types).
func Canonicalize(x interface{}) (interface{}, error) {
	// encoding/json refuses map[interface{}]interface{}, which is
	// what yaml.v2 produces, so stringify keys first.
	x = stringKeys(x)
	js, err := json.Marshal(&x)
	if err != nil {
		return nil, err
	}
	var y interface{}
	if err = json.Unmarshal(js, &y); err != nil {
		return nil, err
	}
	return y, nil
}

func stringKeys(x interface{}) interface{} {
	switch vv := x.(type) {
	case map[interface{}]interface{}:
		acc := make(map[string]interface{}, len(vv))
		for k, v := range vv {
			acc[fmt.Sprintf("%v", k)] = stringKeys(v)
		}
		return acc
	case map[string]interface{}:
		acc := make(map[string]interface{}, len(vv))
		for k, v := range vv {
			acc[k] = stringKeys(v)
		}
		return acc
	case []interface{}:
		acc := make([]interface{}, len(vv))
		for i, v := range vv {
			acc[i] = stringKeys(v)
		}
		return acc
	}
	return x
}

// Timestamp returns a string representing the current time in
// RFC3339Nano.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
