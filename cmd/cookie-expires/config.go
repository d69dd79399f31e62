package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// malformed attribute policies
const (
	policyDropAttribute = "drop-attribute"
	policyRejectCookie  = "reject-cookie"
)

type Config struct {
	Port int    `yaml:"port"`
	DB   string `yaml:"db"`
	// Malformed selects what happens to a cookie whose Expires attribute
	// cannot be parsed: "drop-attribute" keeps it as a session cookie,
	// "reject-cookie" discards the whole cookie.
	Malformed string `yaml:"malformed"`
}

func getConfig(filename string) (Config, error) {
	var config Config
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(configBytes, &config)
	return config, err
}
