// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// st7701 brings up a ST7701 480x480 panel and streams a solid color to it.
//
// The display interface is emulated on the host: drained scanlines can be
// previewed in the terminal with -preview.
package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/rgbpanel/dmaring"
	"github.com/GermanBionicSystems/rgbpanel/dpi"
	"github.com/GermanBionicSystems/rgbpanel/image565"
	"github.com/GermanBionicSystems/rgbpanel/screen1d"
	"github.com/GermanBionicSystems/rgbpanel/st7701"
	"github.com/GermanBionicSystems/rgbpanel/stream"
)

const (
	flagConfig         = "config"
	flagTransport      = "transport"
	flagSPIPort        = "spi-port"
	flagSPIFreq        = "spi-freq"
	flagCS             = "cs"
	flagSCL            = "scl"
	flagSDA            = "sda"
	flagReset          = "reset"
	flagPixelFormat    = "pixel-format"
	flagDescriptors    = "descriptors"
	flagDescriptorSize = "descriptor-size"
	flagColor          = "color"
	flagEmulate        = "emulate"
	flagPreview        = "preview"
	flagStats          = "stats"
	flagDebug          = "debug"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "st7701: %s.\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "st7701",
		Usage: "bring up a ST7701 RGB panel and stream to it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagConfig, Aliases: []string{"c"}, Usage: "load configuration from `FILE`"},
			&cli.StringFlag{Name: flagTransport, Usage: "command transport: spi or bitbang"},
			&cli.StringFlag{Name: flagSPIPort, Usage: "SPI port name, for the spi transport"},
			&cli.StringFlag{Name: flagSPIFreq, Usage: "SPI clock, for the spi transport"},
			&cli.StringFlag{Name: flagCS, Usage: "chip select pin, for the bitbang transport"},
			&cli.StringFlag{Name: flagSCL, Usage: "clock pin, for the bitbang transport"},
			&cli.StringFlag{Name: flagSDA, Usage: "data pin, for the bitbang transport"},
			&cli.StringFlag{Name: flagReset, Usage: "reset pin"},
			&cli.StringFlag{Name: flagPixelFormat, Usage: "rgb565, rgb666 or rgb888"},
			&cli.IntFlag{Name: flagDescriptors, Usage: "number of DMA descriptors"},
			&cli.IntFlag{Name: flagDescriptorSize, Usage: "bytes per DMA descriptor"},
			&cli.StringFlag{Name: flagColor, Usage: "RGB565 color to stream, in hexadecimal"},
			&cli.BoolFlag{Name: flagEmulate, Usage: "use fake pins and SPI port instead of the host's"},
			&cli.IntFlag{Name: flagPreview, Usage: "preview one scanline per frame on `N` terminal columns"},
			&cli.DurationFlag{Name: flagStats, Value: 5 * time.Second, Usage: "streaming statistics period, 0 to disable"},
			&cli.BoolFlag{Name: flagDebug, Aliases: []string{"v"}, Usage: "enable debug logging"},
		},
		Action: mainImpl,
	}
}

// loadConfig reads the optional config file and applies the flags on top.
func loadConfig(c *cli.Context) (Config, error) {
	cfg := defaultConfig()
	if p := c.String(flagConfig); p != "" {
		var err error
		if cfg, err = readConfig(p); err != nil {
			return cfg, err
		}
	}
	for name, dst := range map[string]*string{
		flagTransport:   &cfg.Transport,
		flagSPIPort:     &cfg.SPIPort,
		flagSPIFreq:     &cfg.SPIFreq,
		flagCS:          &cfg.CS,
		flagSCL:         &cfg.SCL,
		flagSDA:         &cfg.SDA,
		flagReset:       &cfg.Reset,
		flagPixelFormat: &cfg.PixelFormat,
		flagColor:       &cfg.Color,
	} {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	for name, dst := range map[string]*int{
		flagDescriptors:    &cfg.Descriptors,
		flagDescriptorSize: &cfg.DescriptorSize,
		flagPreview:        &cfg.Preview,
	} {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}
	if c.IsSet(flagEmulate) {
		cfg.Emulate = c.Bool(flagEmulate)
	}
	return cfg, cfg.Validate()
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	if debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		return l.Sugar(), nil
	}
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// hardware is what the command acquired and must release.
type hardware struct {
	transport st7701.Transport
	rst       gpio.PinOut
	port      spi.PortCloser
}

func (h *hardware) Close() error {
	if h.port == nil {
		return nil
	}
	return h.port.Close()
}

func pin(name string, emulate bool) (gpio.PinIO, error) {
	if emulate {
		return &gpiotest.Pin{N: name}, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Errorf("no pin %q", name)
	}
	return p, nil
}

func openHardware(cfg *Config, log *zap.SugaredLogger) (*hardware, error) {
	if !cfg.Emulate {
		if _, err := host.Init(); err != nil {
			return nil, errors.Wrap(err, "initializing host drivers")
		}
	}
	h := &hardware{}
	var err error
	if h.rst, err = pin(cfg.Reset, cfg.Emulate); err != nil {
		return nil, err
	}
	switch cfg.Transport {
	case transportSPI:
		if cfg.Emulate {
			h.port = &spitest.Record{}
		} else if h.port, err = spireg.Open(cfg.SPIPort); err != nil {
			return nil, errors.Wrapf(err, "opening SPI port %q", cfg.SPIPort)
		}
		f, _ := cfg.spiFreq()
		if h.transport, err = st7701.NewSPI(h.port, &st7701.SPIOpts{Freq: f, Mode: spi.Mode0}); err != nil {
			return nil, multierr.Combine(err, h.Close())
		}
	case transportBitBang:
		var cs, scl, sda gpio.PinIO
		if cs, err = pin(cfg.CS, cfg.Emulate); err != nil {
			return nil, err
		}
		if scl, err = pin(cfg.SCL, cfg.Emulate); err != nil {
			return nil, err
		}
		if sda, err = pin(cfg.SDA, cfg.Emulate); err != nil {
			return nil, err
		}
		if h.transport, err = st7701.NewBitBang(cs, scl, sda, nil); err != nil {
			return nil, err
		}
	}
	log.Infow("hardware ready", "transport", h.transport, "reset", h.rst, "emulated", cfg.Emulate)
	return h, nil
}

func mainImpl(c *cli.Context) error {
	log, err := newLogger(c.Bool(flagDebug))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	h, err := openHardware(&cfg, log)
	if err != nil {
		return err
	}
	pf, _ := cfg.pixelFormat()
	dev, err := st7701.New(h.transport, h.rst, &st7701.Opts{PixelFormat: pf, MADCTL: byte(cfg.MADCTL)})
	if err != nil {
		return multierr.Combine(err, h.Close())
	}

	timing := dpi.Panel480x480
	buf, err := dmaring.New(cfg.Descriptors, cfg.DescriptorSize)
	if err != nil {
		return multierr.Combine(err, h.Close())
	}
	s, err := stream.New(dev, buf, &stream.Opts{Logger: log, Timing: &timing})
	if err != nil {
		return multierr.Combine(err, h.Close())
	}
	if err := s.Configure(); err != nil {
		return multierr.Combine(errors.Wrap(err, "initializing panel"), h.Close())
	}

	color, _ := cfg.color()
	img := image565.NewImage(image.Rect(0, 0, timing.HActive, cfg.PatternLines))
	img.Fill(color)
	pat, err := stream.NewPattern(img.Pix)
	if err != nil {
		return multierr.Combine(err, dev.Halt(), h.Close())
	}
	if _, err := s.Prefill(pat); err != nil {
		return multierr.Combine(err, dev.Halt(), h.Close())
	}

	var sink io.Writer
	var preview *screen1d.Dev
	if cfg.Preview > 0 {
		if preview, err = screen1d.New(&screen1d.Opts{X: cfg.Preview, Line: timing.HActive, Every: timing.VActive}); err != nil {
			return multierr.Combine(err, dev.Halt(), h.Close())
		}
		sink = preview
	}
	e, err := dmaring.NewEmulator(&dmaring.EmulatorOpts{ByteRate: timing.ByteRate(), Sink: sink})
	if err != nil {
		return multierr.Combine(err, dev.Halt(), h.Close())
	}
	log.Infow("starting", "timing", timing.String(), "buffer", buf.String())
	if err := s.Start(e); err != nil {
		return multierr.Combine(errors.Wrap(err, "starting transfer"), dev.Halt(), h.Close())
	}
	done := make(chan error, 1)
	go func() { done <- s.Run() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	var tick <-chan time.Time
	if d := c.Duration(flagStats); d > 0 {
		t := clock.New().Ticker(d)
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case err = <-done:
			err = errors.Wrap(err, "streaming")
		case <-sig:
			log.Info("interrupted")
		case <-tick:
			log.Infow("streaming", "drained", e.Drained(), "underruns", e.Underruns())
			continue
		}
		break
	}
	// The streaming goroutine only stops with the process.
	errs := multierr.Combine(err, e.Halt(), dev.Halt(), h.Close())
	if preview != nil {
		errs = multierr.Append(errs, preview.Halt())
	}
	log.Infow("stopped", "drained", e.Drained(), "underruns", e.Underruns())
	return errs
}
