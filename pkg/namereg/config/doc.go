/*
Package config loads registrar settings from YAML or JSON.

# Overview

Settings are read leniently: a missing key or a value of the wrong type
keeps the default rather than failing the load. Only unreadable files and
malformed documents are errors.

# File Format

	name: name-registrar
	log:
	  level: debug     # debug | info | warn | error; empty disables logging
	  format: json     # text | json
	metrics: true
	tracing:
	  enabled: true
	  exporter: stdout # stdout | none
	  service_name: gateway
	dump:
	  indent: "  "
	  detail: true
	notify:
	  buffer: 64

# Loading

	s, err := config.FromFile("namereg.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	r := namereg.New(namereg.OptionsFromSettings(s, os.Stderr)...)
*/
package config
