// Command chaininfo is a diagnostic tool: it connects to a Halcyon node,
// resolves the network identity and prints the chain tip.
//
// Configuration comes from the environment (a .env file is honored) and an
// optional networks.yaml file mapping friendly network names to endpoints:
//
//	HALCYON_NODE_URL=http://node.example:3000 chaininfo
//	HALCYON_NETWORK=testnet chaininfo   # looked up in networks.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/halcyon-ledger/halcyon-go/pkg/log"
	"github.com/halcyon-ledger/halcyon-go/pkg/sdk"
)

type config struct {
	NodeURL      string        `env:"HALCYON_NODE_URL"`
	Network      string        `env:"HALCYON_NETWORK"`
	NetworksFile string        `env:"HALCYON_NETWORKS_FILE" env-default:"networks.yaml"`
	Timeout      time.Duration `env:"HALCYON_TIMEOUT" env-default:"15s"`

	Log log.Config
}

// networksFile maps friendly network names to node endpoints, e.g.:
//
//	networks:
//	  testnet: http://testnet-node.example:3000
type networksFile struct {
	Networks map[string]string `yaml:"networks"`
}

func main() {
	_ = godotenv.Load()

	var conf config
	if err := cleanenv.ReadEnv(&conf); err != nil {
		fmt.Fprintf(os.Stderr, "read configuration: %v\n", err)
		os.Exit(1)
	}

	lg := log.NewZapLogger(conf.Log).WithName("chaininfo")

	endpoint, err := resolveEndpoint(conf)
	if err != nil {
		lg.Fatal("no node endpoint", "error", err)
	}

	if err := run(conf, endpoint, lg); err != nil {
		lg.Fatal("chaininfo failed", "endpoint", endpoint, "error", err)
	}
}

// resolveEndpoint prefers an explicit node URL; otherwise the network name is
// looked up in the networks file.
func resolveEndpoint(conf config) (string, error) {
	if conf.NodeURL != "" {
		return conf.NodeURL, nil
	}
	if conf.Network == "" {
		return "", fmt.Errorf("set HALCYON_NODE_URL or HALCYON_NETWORK")
	}

	data, err := os.ReadFile(conf.NetworksFile)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", conf.NetworksFile, err)
	}
	var nf networksFile
	if err := yaml.Unmarshal(data, &nf); err != nil {
		return "", fmt.Errorf("parse %s: %w", conf.NetworksFile, err)
	}

	endpoint, ok := nf.Networks[conf.Network]
	if !ok {
		return "", fmt.Errorf("network %q not listed in %s", conf.Network, conf.NetworksFile)
	}
	return endpoint, nil
}

func run(conf config, endpoint string, lg log.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), conf.Timeout)
	defer cancel()

	factory, err := sdk.NewRepositoryFactory(endpoint, sdk.WithLogger(lg))
	if err != nil {
		return err
	}

	networkType, err := factory.NetworkType(ctx)
	if err != nil {
		return err
	}
	generationHash, err := factory.GenerationHash(ctx)
	if err != nil {
		return err
	}
	chain, err := factory.CreateChainRepository().GetChainInfo(ctx)
	if err != nil {
		return err
	}
	node, err := factory.CreateNodeRepository().GetNodeInfo(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("endpoint:         %s\n", endpoint)
	fmt.Printf("node:             %s (%s)\n", node.FriendlyName, node.Host)
	fmt.Printf("network:          %s\n", networkType)
	fmt.Printf("generation hash:  %s\n", generationHash)
	fmt.Printf("height:           %s\n", chain.Height)
	fmt.Printf("finalized height: %s\n", chain.FinalizedHeight)
	return nil
}
