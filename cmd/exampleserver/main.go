// Command exampleserver is a read-mostly HTTP viewer over the assetprov
// core library: derive an identifier, fetch its metadata bundle, inspect
// a selective view, register the integrated metadata. It exists to exercise
// the library end to end, not as a production registry front-end;
// persistence is in-memory only.
package main

import (
	"github.com/prometheus/client_golang/prometheus"
	logrus "github.com/sirupsen/logrus"

	"assetprov/core"
	"assetprov/pkg/config"
	"assetprov/pkg/utils"
	"assetprov/registry"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	addr := utils.EnvOrDefault("ASSETPROV_EXAMPLESERVER_BIND", ":8081")

	promReg := prometheus.NewRegistry()
	reg := registry.New(log)
	g := core.NewGraph(log, core.NewGraphMetrics(promReg))
	svc := NewResourceService(reg, g, core.NewIdentifierMetrics(promReg))

	srv := NewServer(addr, svc, promReg, log)
	log.Infof("listening on %s", addr)
	if err := srv.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
