package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/bwesterb/go-ristretto"
	"github.com/magiconair/properties"
	"github.com/mr-tron/base58"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/sha3"

	"github.com/blocketh-dot/blitzar"
	"github.com/blocketh-dot/blitzar/log"
)

func main() {
	app := &cli.App{
		Name:  "blitzar",
		Usage: "inner-product argument prover and verifier over ristretto255",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "properties file with backend, n and label defaults"},
			&cli.StringFlag{Name: "backend", Usage: "host or device"},
			&cli.IntFlag{Name: "n", Usage: "vector length, a power of two >= 2"},
			&cli.StringFlag{Name: "label", Usage: "public generator label shared by prover and verifier"},
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:  "prove",
				Usage: "prove knowledge of a vector committed against the labelled generators",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "seed", Required: true, Usage: "secret seed the a vector is derived from"},
				},
				Action: proveCmd,
			},
			{
				Name:  "verify",
				Usage: "verify a proof against a commitment",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "commitment", Required: true, Usage: "base58 commitment"},
					&cli.StringFlag{Name: "proof", Required: true, Usage: "base58 proof"},
				},
				Action: verifyCmd,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type settings struct {
	backend blitzar.Backend
	n       int
	label   string
	logger  log.Logger
}

func loadSettings(c *cli.Context) (*settings, error) {
	props := properties.NewProperties()
	if path := c.String("config"); path != "" {
		var err error
		props, err = properties.LoadFile(path, properties.UTF8)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	backendName := props.GetString("backend", "host")
	if c.IsSet("backend") {
		backendName = c.String("backend")
	}
	backend, err := blitzar.ParseBackend(backendName)
	if err != nil {
		return nil, err
	}

	n := props.GetInt("n", 64)
	if c.IsSet("n") {
		n = c.Int("n")
	}
	label := props.GetString("label", "blitzar-demo")
	if c.IsSet("label") {
		label = c.String("label")
	}

	level := log.InfoLevel
	if c.Bool("verbose") || props.GetBool("verbose", false) {
		level = log.DebugLevel
	}

	return &settings{
		backend: backend,
		n:       n,
		label:   label,
		logger:  log.New(level),
	}, nil
}

// descriptorFromLabel derives the shared public inputs: generators, q and the
// b vector all come from the label, so both sides agree without exchanging
// them.
func descriptorFromLabel(n int, label string) (*blitzar.ProofDescriptor, error) {
	gVec, q := blitzar.NewProofGens(n, []byte(label))
	bVec := scalarsFromSeed(n, "b-vector/"+label)
	return blitzar.NewProofDescriptor(bVec, gVec, q)
}

func scalarsFromSeed(n int, seed string) []*ristretto.Scalar {
	h := sha3.NewShake256()
	h.Write([]byte(seed))
	out := make([]*ristretto.Scalar, n)
	for i := 0; i < n; i++ {
		var wide [64]byte
		h.Read(wide[:])
		var s ristretto.Scalar
		out[i] = s.SetReduced(&wide)
	}
	return out
}

func proveCmd(c *cli.Context) error {
	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	descriptor, err := descriptorFromLabel(cfg.n, cfg.label)
	if err != nil {
		return err
	}
	drv, err := blitzar.NewDriver(cfg.backend, cfg.logger)
	if err != nil {
		return err
	}

	aVec := scalarsFromSeed(cfg.n, c.String("seed"))
	commit, err := blitzar.Commitment(descriptor, aVec)
	if err != nil {
		return err
	}

	transcript := blitzar.InitialTranscript(blitzar.INNER_PRODUCT_DOMAIN_TAG)
	proof, err := blitzar.CreateInnerProductProof(drv, transcript, descriptor, aVec)
	if err != nil {
		return err
	}

	cfg.logger.Infow("proof created", "backend", cfg.backend.String(), "n", cfg.n, "rounds", descriptor.Rounds())
	fmt.Printf("commitment: %s\n", base58.Encode(commit.Bytes()))
	fmt.Printf("proof:      %s\n", base58.Encode(proof.ToBytes()))
	return nil
}

func verifyCmd(c *cli.Context) error {
	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	descriptor, err := descriptorFromLabel(cfg.n, cfg.label)
	if err != nil {
		return err
	}
	drv, err := blitzar.NewDriver(cfg.backend, cfg.logger)
	if err != nil {
		return err
	}

	commitData, err := base58.Decode(c.String("commitment"))
	if err != nil || len(commitData) != 32 {
		return fmt.Errorf("malformed commitment %q", c.String("commitment"))
	}
	var commit blitzar.CompressedElement
	copy(commit[:], commitData)

	proofData, err := base58.Decode(c.String("proof"))
	if err != nil {
		return fmt.Errorf("malformed proof: %w", err)
	}
	proof, err := blitzar.ProofFromBytes(proofData)
	if err != nil {
		return err
	}

	transcript := blitzar.InitialTranscript(blitzar.INNER_PRODUCT_DOMAIN_TAG)
	ok, err := blitzar.VerifyInnerProductProof(drv, transcript, descriptor, &commit, proof)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("verification: REJECTED")
		return fmt.Errorf("proof rejected for commitment %s", hex.EncodeToString(commit.Bytes()))
	}
	fmt.Println("verification: OK")
	return nil
}
