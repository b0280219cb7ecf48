package cli

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	logging "github.com/ipfs/go-log"
	"github.com/urfave/cli/v2"
	"github.com/wcgcyx/tracegen/config"
	"github.com/wcgcyx/tracegen/field"
	"github.com/wcgcyx/tracegen/field/bn254"
	"github.com/wcgcyx/tracegen/field/goldilocks"
	"github.com/wcgcyx/tracegen/generation"
	"github.com/wcgcyx/tracegen/kernel"
	"github.com/wcgcyx/tracegen/session"
	"github.com/wcgcyx/tracegen/witnessstore"
)

// Logger
var log = logging.Logger("cli")

// report is what the witness command prints.
type report struct {
	Digest       string `json:"digest"`
	KernelHash   string `json:"kernel_hash"`
	SignedTxns   int    `json:"signed_txns"`
	MptInputs    int    `json:"mpt_inputs"`
	RlpInputs    int    `json:"rlp_inputs"`
	ObserveLabel uint64 `json:"observe_label"`
}

// loadConfig loads the config and applies flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	conf, err := config.NewConfig(c.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if c.IsSet("path") {
		log.Infof("Override path to be %v", c.String("path"))
		conf.Path = c.String("path")
	}
	if c.IsSet("kernel") {
		log.Infof("Override kernel to be %v", c.String("kernel"))
		conf.KernelPath = c.String("kernel")
	}
	if c.IsSet("field") {
		f := strings.ToLower(c.String("field"))
		if f != config.FieldGoldilocks && f != config.FieldBn254 {
			return config.Config{}, fmt.Errorf("unsupported field %v", c.String("field"))
		}
		log.Infof("Override field to be %v", f)
		conf.Field = f
	}
	return conf, nil
}

func runWitness(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expect exactly one inputs file, got %v", c.NArg())
	}
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	k, err := kernel.LoadKernel(conf.KernelPath)
	if err != nil {
		return err
	}
	inputs, err := generation.LoadInputs(c.Args().First())
	if err != nil {
		return err
	}

	var store witnessstore.WitnessStore
	if !c.Bool("no-cache") {
		log.Infof("Start witness store...")
		store, err = witnessstore.NewWitnessStoreImpl(c.Context, witnessstore.Opts{
			Path:         filepath.Join(conf.Path, "witnessdata"),
			CacheSize:    conf.WitnessCacheSize,
			Retention:    conf.WitnessRetention,
			GCPeriod:     conf.WitnessGCPeriod,
			ReadTimeout:  conf.DSTimeout,
			WriteTimeout: conf.DSTimeout,
		})
		if err != nil {
			return err
		}
		defer store.Shutdown()
		log.Infof("Witness store started.")
	}

	var r report
	switch conf.Field {
	case config.FieldBn254:
		r, err = openState[bn254.Element](store, inputs, k)
	default:
		r, err = openState[goldilocks.Element](store, inputs, k)
	}
	if err != nil {
		return err
	}
	return writeReport(os.Stdout, r)
}

// writeReport writes the report as indented json.
func writeReport(w io.Writer, r report) error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// openState builds the generation state in the given field and reports it.
func openState[F field.Element[F]](store witnessstore.WitnessStore, inputs generation.GenerationInputs, k *kernel.Kernel) (report, error) {
	s, err := session.Open[F](store, inputs, k)
	if err != nil {
		return report{}, err
	}
	label, err := k.Label(kernel.ObserveNewAddress)
	if err != nil {
		return report{}, err
	}
	return report{
		Digest:       inputs.Digest().Hex(),
		KernelHash:   k.CodeHash().Hex(),
		SignedTxns:   len(s.Inputs.SignedTxns),
		MptInputs:    s.RemainingMptProverInputs(),
		RlpInputs:    s.RemainingRlpProverInputs(),
		ObserveLabel: label,
	}, nil
}

func runLabels(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	k, err := kernel.LoadKernel(conf.KernelPath)
	if err != nil {
		return err
	}
	for _, name := range k.Labels() {
		offset, err := k.Label(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-40v %v\n", name, offset)
	}
	return nil
}
