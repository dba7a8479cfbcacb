package converter

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// LoadConfig reads BVHToGLTFOption from a yaml file.
func LoadConfig(confpath string) (*BVHToGLTFOption, error) {
	data, err := ioutil.ReadFile(confpath)
	if err != nil {
		return nil, err
	}
	var conf BVHToGLTFOption
	err = yaml.UnmarshalStrict(data, &conf)
	if err != nil {
		return nil, err
	}
	return &conf, nil
}
