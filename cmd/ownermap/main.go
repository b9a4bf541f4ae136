// Command ownermap runs playouts from a position and reports who owns each point and which groups are dead.
//
// The position is read from a board diagram such as the output of showboard:
//
//	ownermap -board position.txt -playouts 5000 -gif heat.gif -csv points.csv
//
// With -npy the position and its statistics are also written as a numpy array of shape (5, m, n), or
// (4, 5, m, n) with -augment, for training ownership networks.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gorgonia/playout/encoding"
	"github.com/gorgonia/playout/encoding/gif"
	"github.com/gorgonia/playout/game"
	wq "github.com/gorgonia/playout/game/wq"
	"github.com/gorgonia/playout/playout"
)

var (
	boardFile = flag.String("board", "", "file holding the board diagram. Defaults to stdin")
	confFile  = flag.String("config", "", "YAML file with the playout configuration")
	komi      = flag.Float64("komi", 7.5, "komi")
	toMove    = flag.String("tomove", "b", "player to move: b or w")
	playouts  = flag.Int("playouts", 1000, "number of playouts")
	batches   = flag.Int("batches", 1, "number of batches the playouts are split into. Each batch is a frame of the GIF")
	gifFile   = flag.String("gif", "", "write the ownership heatmap to this GIF file")
	csvFile   = flag.String("csv", "", "write per point statistics to this CSV file")
	dotFile   = flag.String("dot", "", "write the group graph to this DOT file")
	npyFile   = flag.String("npy", "", "write the training sample to this numpy file")
	augment   = flag.Bool("augment", false, "write all four quarter turns of the training sample")
	verbose   = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	playout.SetLogger(logger)

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("ownermap failed")
	}
}

func loadConfig() (playout.Config, error) {
	conf := playout.DefaultConfig()
	if *confFile == "" {
		return conf, nil
	}
	data, err := os.ReadFile(*confFile)
	if err != nil {
		return conf, errors.Wrap(err, "Unable to read config")
	}
	if err = yaml.Unmarshal(data, &conf); err != nil {
		return conf, errors.Wrapf(err, "Unable to parse config %q", *confFile)
	}
	return conf, nil
}

func loadBoard() (*wq.Board, error) {
	var data []byte
	var err error
	if *boardFile == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*boardFile)
	}
	if err != nil {
		return nil, errors.Wrap(err, "Unable to read board")
	}
	return wq.Parse(string(data), float32(*komi))
}

func run(logger zerolog.Logger) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := loadBoard()
	if err != nil {
		return err
	}
	start := game.BlackP
	if strings.HasPrefix(strings.ToLower(*toMove), "w") {
		start = game.WhiteP
	}
	if *batches < 1 || *batches > *playouts {
		*batches = 1
	}

	r, err := playout.NewRunner(conf, nil, logger)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var enc *gif.Encoder
	var out *os.File
	if *gifFile != "" {
		if out, err = os.Create(*gifFile); err != nil {
			return errors.Wrap(err, "Unable to create GIF")
		}
		defer out.Close()
		enc = gif.NewEncoder(out, 24)
	}

	own := playout.NewOwnermap(b.Points())
	fork := func() playout.Board { return b.Clone() }
	var mean float32
	for i := 0; i < *batches; i++ {
		n := *playouts / *batches
		if i < *playouts%*batches {
			n++
		}
		res, err := r.Run(ctx, fork, start, n)
		if err != nil {
			return err
		}
		own.Merge(res.Ownermap)
		mean += res.Mean * float32(n) / float32(*playouts)
		if enc != nil {
			if err := enc.Encode(b, own, fmt.Sprintf("Batch %d of %d", i+1, *batches)); err != nil {
				return err
			}
		}
	}
	if enc != nil {
		if err := enc.Flush(); err != nil {
			return err
		}
	}

	j := playout.JudgeGroups(b, own, conf.Threshold)
	fmt.Printf("%s\n", b)
	fmt.Printf("Mean result for %v: %.2f over %d playouts\n", start, mean, own.Playouts)
	for _, gs := range []playout.GroupState{playout.Alive, playout.Dead, playout.Unknown} {
		var vertices []string
		for _, p := range j.Stones(b, gs) {
			vertices = append(vertices, b.Vertex(p))
		}
		fmt.Printf("%-8v %s\n", gs, strings.Join(vertices, " "))
	}

	if *csvFile != "" {
		if err := encoding.Dump(*csvFile, b, own, conf.Threshold); err != nil {
			return err
		}
	}
	if *dotFile != "" {
		dot, err := playout.ToDot(b, j, own)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*dotFile, []byte(dot), 0644); err != nil {
			return errors.Wrap(err, "Unable to write DOT file")
		}
	}
	if *npyFile != "" {
		if err := writeSample(*npyFile, b, own, conf.Threshold); err != nil {
			return err
		}
	}
	return nil
}

func writeSample(filename string, b *wq.Board, own *playout.Ownermap, thres float32) error {
	s, err := encoding.Sample(b, own, thres)
	if err != nil {
		return err
	}
	if *augment {
		if s, err = encoding.Augment(s); err != nil {
			return err
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "Unable to create numpy file")
	}
	defer f.Close()
	if err := s.WriteNpy(f); err != nil {
		return errors.Wrapf(err, "Unable to write sample to %q", filename)
	}
	return errors.WithStack(f.Close())
}
