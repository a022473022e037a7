package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/yed1dya/machine-learning-ex3/golang/dataset"
	"github.com/yed1dya/machine-learning-ex3/golang/logger"
)

//DataConfig selects the data source and the two classes kept from it.
type DataConfig struct {
	Path        string `mapstructure:"path"`
	Format      string `mapstructure:"format"`
	Class1      string `mapstructure:"class1"`
	Class2      string `mapstructure:"class2"`
	XColumn     int    `mapstructure:"x_column"`
	YColumn     int    `mapstructure:"y_column"`
	ClassColumn int    `mapstructure:"class_column"`
	Table       string `mapstructure:"table"`
	XName       string `mapstructure:"x_name"`
	YName       string `mapstructure:"y_name"`
	ClassName   string `mapstructure:"class_name"`
}

//TreeConfig selects the tree building strategy and the exhaustive search threads.
type TreeConfig struct {
	Strategy string `mapstructure:"strategy"`
	Threads  int    `mapstructure:"threads"`
	LogEvery int    `mapstructure:"log_every"`
}

//GraphConfig sets the figure type and the output prefix of rendered trees.
type GraphConfig struct {
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

//KnnConfig holds the k-NN sweep grid. P values are strings so that inf can be given.
type KnnConfig struct {
	P      []string `mapstructure:"p"`
	K      []int    `mapstructure:"k"`
	Runs   int      `mapstructure:"runs"`
	Seed   int64    `mapstructure:"seed"`
	Output string   `mapstructure:"output"`
}

//LogConfig mirrors logger.Config.
type LogConfig struct {
	Level          string `mapstructure:"level"`
	Path           string `mapstructure:"path"`
	Console        bool   `mapstructure:"console"`
	RotationTime   int    `mapstructure:"rotation_time"`
	RotationMaxAge int    `mapstructure:"rotation_max_age"`
}

//Config is the whole ex3 configuration as decoded by viper.
type Config struct {
	Data  DataConfig  `mapstructure:"data"`
	Tree  TreeConfig  `mapstructure:"tree"`
	Graph GraphConfig `mapstructure:"graph"`
	Knn   KnnConfig   `mapstructure:"knn"`
	Log   LogConfig   `mapstructure:"log"`
}

//flag name -> config key
var flagKeys = map[string]string{
	"data":      "data.path",
	"format":    "data.format",
	"strategy":  "tree.strategy",
	"threads":   "tree.threads",
	"figure":    "graph.format",
	"output":    "graph.output",
	"runs":      "knn.runs",
	"seed":      "knn.seed",
	"npy":       "knn.output",
	"log-level": "log.level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.path", "iris.txt")
	v.SetDefault("data.format", "text")
	v.SetDefault("data.class1", "Iris-versicolor")
	v.SetDefault("data.class2", "Iris-virginica")
	v.SetDefault("data.x_column", 1)
	v.SetDefault("data.y_column", 2)
	v.SetDefault("data.class_column", 4)
	v.SetDefault("data.table", "iris")
	v.SetDefault("data.x_name", "sepal_width")
	v.SetDefault("data.y_name", "petal_length")
	v.SetDefault("data.class_name", "class")
	v.SetDefault("tree.strategy", "both")
	v.SetDefault("tree.threads", 1)
	v.SetDefault("tree.log_every", 10000)
	v.SetDefault("graph.format", "svg")
	v.SetDefault("graph.output", "tree")
	v.SetDefault("knn.p", []string{"1", "2", "inf"})
	v.SetDefault("knn.k", []int{1, 3, 5, 7, 9})
	v.SetDefault("knn.runs", 100)
	v.SetDefault("knn.seed", 1)
	v.SetDefault("knn.output", "")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.path", "")
	v.SetDefault("log.console", true)
	v.SetDefault("log.rotation_time", 24)
	v.SetDefault("log.rotation_max_age", 7)
}

//loadConfig merges defaults, the config file, EX3_* environment variables and the command flags.
//A missing default config file is not an error; a missing explicit one is.
func loadConfig(flags *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ex3")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		altPath := os.Getenv("EX3_CFG_PATH")
		if altPath == "" {
			altPath = "."
		}
		v.AddConfigPath(altPath)
		v.SetConfigName("ex3_config")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, errors.Wrap(err, "reading config")
		}
	}

	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && f.Changed && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return nil, errors.Wrap(bindErr, "binding flags")
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	return config, nil
}

func commandConfig(cmd *cobra.Command, rootConfig *rootCmdConfig) (*Config, *zap.SugaredLogger, error) {
	config, err := loadConfig(cmd.Flags(), rootConfig.configFile)
	if err != nil {
		return nil, nil, err
	}
	logConfig := logger.DefaultConfig()
	logConfig.Level = config.Log.Level
	logConfig.Path = config.Log.Path
	logConfig.Console = config.Log.Console
	if config.Log.RotationTime > 0 {
		logConfig.RotationTime = config.Log.RotationTime
	}
	if config.Log.RotationMaxAge > 0 {
		logConfig.RotationMaxAge = config.Log.RotationMaxAge
	}
	if rootConfig.verbose {
		logConfig.Level = "DEBUG"
	}
	log, err := logger.New("ex3", logConfig)
	if err != nil {
		return nil, nil, err
	}
	return config, log, nil
}

//PValues parses the configured distance orders. Every value must be positive.
func (c *KnnConfig) PValues() ([]float64, error) {
	values := make([]float64, 0, len(c.P))
	for _, s := range c.P {
		p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing p value %q", s)
		}
		if p <= 0 {
			return nil, errors.Errorf("p value %q must be positive", s)
		}
		values = append(values, p)
	}
	return values, nil
}

func (c *DataConfig) classes() dataset.Classes {
	return dataset.Classes{First: c.Class1, Second: c.Class2}
}

//Load reads the dataset in the configured format and logs its label counts.
func (c *DataConfig) Load(log *zap.SugaredLogger) (*dataset.Dataset, error) {
	log.Infof("loading %s data from %s", c.Format, c.Path)
	var d *dataset.Dataset
	var err error
	switch c.Format {
	case "text":
		d, err = dataset.LoadText(c.Path, c.classes(), dataset.TextFormat{XColumn: c.XColumn, YColumn: c.YColumn, ClassColumn: c.ClassColumn})
	case "npy":
		d, err = dataset.LoadNpy(c.Path)
	case "sqlite":
		d, err = dataset.LoadSQLite(c.Path, dataset.Table{Name: c.Table, XColumn: c.XName, YColumn: c.YName, ClassColumn: c.ClassName}, c.classes())
	default:
		return nil, errors.Errorf("unknown data format %q", c.Format)
	}
	if err != nil {
		return nil, err
	}
	zeros, ones := d.CountLabels()
	log.Infof("loaded %d points (%d labelled 0, %d labelled 1), %d split candidates", len(d.Points), zeros, ones, len(d.Candidates()))
	return d, nil
}
