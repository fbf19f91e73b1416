// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/rgbpanel/dmaring"
	"github.com/GermanBionicSystems/rgbpanel/image565"
	"github.com/GermanBionicSystems/rgbpanel/st7701"
)

const (
	transportSPI     = "spi"
	transportBitBang = "bitbang"
)

// Config is the panel wiring and streaming setup. Files are JSON with
// ${VAR} environment expansion.
type Config struct {
	Transport string `json:"transport"`
	SPIPort   string `json:"spi_port"`
	SPIFreq   string `json:"spi_freq"`
	CS        string `json:"cs"`
	SCL       string `json:"scl"`
	SDA       string `json:"sda"`
	Reset     string `json:"reset"`

	PixelFormat string `json:"pixel_format"`
	MADCTL      int    `json:"madctl"`

	Descriptors    int    `json:"descriptors"`
	DescriptorSize int    `json:"descriptor_size"`
	PatternLines   int    `json:"pattern_lines"`
	Color          string `json:"color"`

	Emulate bool `json:"emulate"`
	Preview int  `json:"preview"`
}

// defaultConfig is the wiring of the 480x480 reference board.
func defaultConfig() Config {
	return Config{
		Transport:      transportBitBang,
		SPIFreq:        "4MHz",
		CS:             "GPIO21",
		SCL:            "GPIO14",
		SDA:            "GPIO13",
		Reset:          "GPIO47",
		PixelFormat:    "rgb666",
		MADCTL:         0x08,
		Descriptors:    100,
		DescriptorSize: 1000,
		PatternLines:   16,
		Color:          "F800",
	}
}

// readConfig reads path over the defaults.
func readConfig(path string) (Config, error) {
	cfg := defaultConfig()
	buf, err := envsubst.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading %s", path)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(buf, &raw); err != nil {
		return cfg, errors.Wrapf(err, "parsing %s", path)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(raw); err != nil {
		return cfg, errors.Wrapf(err, "decoding %s", path)
	}
	return cfg, nil
}

// Validate checks the values that are not checked by the packages they are
// handed to.
func (c *Config) Validate() error {
	switch c.Transport {
	case transportSPI, transportBitBang:
	default:
		return errors.Errorf("unknown transport %q", c.Transport)
	}
	if _, err := c.pixelFormat(); err != nil {
		return err
	}
	if _, err := c.color(); err != nil {
		return err
	}
	if _, err := c.spiFreq(); err != nil {
		return err
	}
	if c.MADCTL < 0 || c.MADCTL > 0xFF {
		return errors.Errorf("madctl 0x%X does not fit a byte", c.MADCTL)
	}
	if c.Descriptors <= 0 {
		return errors.Errorf("descriptors must be positive, got %d", c.Descriptors)
	}
	if c.DescriptorSize <= 0 || c.DescriptorSize > dmaring.MaxDescriptorSize {
		return errors.Errorf("descriptor_size must be in [1, %d], got %d", dmaring.MaxDescriptorSize, c.DescriptorSize)
	}
	if c.PatternLines <= 0 {
		return errors.New("pattern_lines must be positive")
	}
	if c.Preview < 0 {
		return errors.New("preview must not be negative")
	}
	return nil
}

func (c *Config) pixelFormat() (st7701.PixelFormat, error) {
	switch strings.ToLower(c.PixelFormat) {
	case "rgb565":
		return st7701.RGB565, nil
	case "rgb666":
		return st7701.RGB666, nil
	case "rgb888":
		return st7701.RGB888, nil
	default:
		return 0, errors.Errorf("unknown pixel format %q", c.PixelFormat)
	}
}

// color parses a RGB565 value in hexadecimal.
func (c *Config) color() (image565.Color, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(c.Color), "0x"), 16, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid color %q", c.Color)
	}
	return image565.Color(v), nil
}

func (c *Config) spiFreq() (physic.Frequency, error) {
	var f physic.Frequency
	if err := f.Set(c.SPIFreq); err != nil {
		return 0, errors.Wrapf(err, "invalid spi_freq %q", c.SPIFreq)
	}
	return f, nil
}
