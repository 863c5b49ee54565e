package core

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time     TimeConfiguration     `toml:"time"`
	Renderer RendererConfiguration `toml:"renderer"`
	Assets   AssetConfiguration    `toml:"assets"`
	Pools    PoolConfiguration     `toml:"pools"`
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int `toml:"frames_per_second"`

	// EventPollDelay is the wait between event queue polls,
	// in milliseconds
	EventPollDelay int `toml:"event_poll_delay"`
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	SwapchainSize    uint32   `toml:"swapchain_size"`
	DeviceExtensions []string `toml:"device_extensions"`

	ScreenWidth  uint32 `toml:"screen_width"`
	ScreenHeight uint32 `toml:"screen_height"`

	ShaderDirectory string `toml:"shader_directory"`
}

// AssetConfiguration points the engine at its asset archive
type AssetConfiguration struct {
	Archive string `toml:"archive"`
}

// PoolConfiguration sets up-front slot reservations for the
// engine object registries
type PoolConfiguration struct {
	Reserve int `toml:"reserve"`
}

// DefaultConfiguration is used where no configuration file is given
var DefaultConfiguration = Configuration{
	Time: TimeConfiguration{
		FramesPerSecond: 2000,
		EventPollDelay:  50,
	},
	Renderer: RendererConfiguration{
		ScreenWidth:   800,
		ScreenHeight:  600,
		SwapchainSize: 3,
		DeviceExtensions: []string{
			"VK_KHR_swapchain",
		},
		ShaderDirectory: "./shaders",
	},
	Assets: AssetConfiguration{
		Archive: "assets.arv",
	},
	Pools: PoolConfiguration{
		Reserve: 64,
	},
}

// LoadConfiguration reads a TOML configuration file on top of the
// defaults and applies ARVO_* environment overrides last. A missing
// file is not an error, the defaults are used instead.
func LoadConfiguration(path string) (Configuration, error) {
	cfg := DefaultConfiguration
	contents, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("os.ReadFile(): %s", err.Error())
		}
	} else if err := toml.Unmarshal(contents, &cfg); err != nil {
		return cfg, fmt.Errorf("toml.Unmarshal(): %s", err.Error())
	} else {
		log.Infof("configuration loaded from %s", path)
	}
	applyEnvironment(&cfg)
	return cfg, nil
}

func applyEnvironment(cfg *Configuration) {
	if fps := envy.Get("ARVO_FPS", ""); fps != "" {
		if parsed, err := strconv.Atoi(fps); err == nil {
			cfg.Time.FramesPerSecond = parsed
		}
	}
	if archive := envy.Get("ARVO_ARCHIVE", ""); archive != "" {
		cfg.Assets.Archive = archive
	}
	if dir := envy.Get("ARVO_SHADER_DIR", ""); dir != "" {
		cfg.Renderer.ShaderDirectory = dir
	}
}
