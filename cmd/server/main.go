package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"dentaldesk/internal/config"
	"dentaldesk/internal/models"
	"dentaldesk/internal/stubapi"
	"dentaldesk/internal/utils"
)

func main() {
	seed := flag.Bool("seed", false, "Create demo users doctor/doctor and patient/patient")
	flag.Parse()

	cfg := config.Load()
	if cfg.StubSecret == config.DefaultStubSecret {
		log.Println("STUB_SECRET not set, using the default signing secret")
	}

	srv := stubapi.NewServer(cfg.StubSecret, stubapi.WithLogger(utils.NewWriterLogger(os.Stderr)))
	if *seed {
		for _, p := range []models.Profile{
			{Username: "doctor", Password: "doctor", Email: "doctor@dentalai.local", Role: models.RoleDoctor, FullName: "Demo Doctor"},
			{Username: "patient", Password: "patient", Email: "patient@dentalai.local", Role: models.RolePatient, FullName: "Demo Patient"},
		} {
			if _, err := srv.AddUser(p); err != nil {
				log.Fatalf("seed %s: %v", p.Username, err)
			}
		}
	}

	log.Println("Stub backend running on", cfg.StubAddr)
	log.Fatal(http.ListenAndServe(cfg.StubAddr, srv))
}
