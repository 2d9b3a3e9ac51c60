// Package emulium is a semantic network lab orchestration platform.
//
// # Overview
//
// Emulium turns declarative topology descriptions into live network labs
// on GNS3 servers and pushes shell scripts onto the booted nodes over
// their telnet consoles, with JSON-LD documents recording every scenario,
// deployment and schedule.
//
// The platform consists of three main components:
//   - API Server: REST API for scenarios, deployments, scripts and schedules
//   - Deployment Engine: topology builder and console script pusher
//   - Storage Layer: CouchDB-backed JSON-LD document storage
//
// # Architecture
//
//	┌─────────────────┐
//	│   REST Client   │
//	│  (curl / CI)    │
//	└────────┬────────┘
//	         │
//	┌────────▼────────┐       ┌─────────────────┐
//	│  API Server     │◄──────┤  Scheduler      │
//	│  (Echo REST)    │       │  (Actions)      │
//	└────┬───────┬────┘       └─────────────────┘
//	     │       │
//	┌────▼───┐ ┌─▼──────────────┐
//	│Storage │ │ GNS3 Gateway    │
//	│CouchDB │ │ + Console Push  │
//	└────────┘ └─────────────────┘
//
// # Core Features
//
// JSON-LD/Schema.org Models:
//   - Scenario, deployment, script and scheduled action documents
//   - Stable document identity across deploy/teardown cycles
//   - Standards-based vocabulary
//
// REST API:
//   - Full CRUD for scenarios, scripts and scheduled actions
//   - One-call scenario deployment with per-unit outcome reports
//   - Bounded-parallel script push and execution over node consoles
//   - WebSocket support for real-time deployment progress
//
// Deployment Engine:
//   - Template resolution by UUID, scenario key or server-side name
//   - Nodes and links created in declared order, partial failures recorded
//   - Console endpoint registry for later script pushes
//   - Project-wide cleanup sweeps
//
// Scheduler:
//   - schema.org Schedule evaluation (frequency, calendar constraints)
//   - Recurring scenario activation, deactivation and teardown
//
// # Usage
//
// Start the API server:
//
//	emulium server --config configs/config.yaml
//
// Deploy a scenario from a file without storing it:
//
//	emulium deploy --file scenario.yaml
//
// Push a script to booted nodes:
//
//	emulium push --project ot-lab --node plc-1 --file provision.sh --run
//
// # Configuration
//
// Configuration can be provided via:
//   - YAML file (configs/config.yaml)
//   - Environment variables (EMULIUM_ prefix)
//   - .env file
//
// Example configuration:
//
//	server:
//	  host: 0.0.0.0
//	  port: 8085
//	couchdb:
//	  url: http://localhost:5984
//	  database: emulium
//	  username: admin
//	  password: password
//	gns3:
//	  url: http://localhost:3080
//	push:
//	  concurrency: 5
//
// # API Endpoints
//
// Scenario Management:
//   - GET    /api/v1/scenarios            - List scenarios (paginated)
//   - GET    /api/v1/scenarios/:id        - Get scenario by ID
//   - POST   /api/v1/scenarios            - Create scenario
//   - PUT    /api/v1/scenarios/:id        - Update scenario
//   - DELETE /api/v1/scenarios/:id        - Delete scenario
//   - POST   /api/v1/scenarios/:id/deploy - Deploy stored scenario
//   - POST   /api/v1/deploy               - Deploy ad-hoc scenario
//
// Script Management:
//   - GET    /api/v1/scripts         - List scripts (paginated)
//   - POST   /api/v1/scripts         - Create script
//   - POST   /api/v1/scripts/push    - Push scripts to nodes
//   - POST   /api/v1/scripts/run     - Run uploaded scripts
//
// Deployments and Cleanup:
//   - GET    /api/v1/deployments                      - List deployment reports
//   - GET    /api/v1/deployments/:id                  - Get deployment report
//   - POST   /api/v1/gns3/projects/:project/cleanup   - Tear down a project
//
// Scheduled Actions:
//   - GET    /api/v1/actions     - List scheduled actions
//   - POST   /api/v1/actions     - Create scheduled action
//
// WebSocket:
//   - GET /api/v1/ws/events   - Real-time deployment and push events
//   - GET /api/v1/ws/stats    - WebSocket statistics
//
// # JSON-LD Models
//
// Scenario (Schema.org CreativeWork):
//
//	{
//	  "@context": "https://schema.org",
//	  "@type": "Scenario",
//	  "@id": "scenario:5478c6d2",
//	  "name": "ot-segmentation-lab",
//	  "definition": {
//	    "templates": {"alpine": "1966b864-93e9-32d5-d0bd-53144621be32"},
//	    "nodes": [{"name": "plc-1", "template_key": "alpine"}],
//	    "links": [{"a": {"node": "plc-1"}, "b": {"node": "sw-1"}}]
//	  }
//	}
//
// Script (Schema.org SoftwareSourceCode):
//
//	{
//	  "@context": "https://schema.org",
//	  "@type": "SoftwareSourceCode",
//	  "@id": "script:9f31ab04",
//	  "name": "enable-forwarding",
//	  "text": "#!/bin/sh\nsysctl -w net.ipv4.ip_forward=1\n"
//	}
//
// # Development
//
// Run tests:
//
//	go test ./...
//
// Run unit tests:
//
//	go test ./internal/api/...
//
// Build the binary:
//
//	go build -o emulium ./cmd/emulium
//
// # Technology Stack
//
//   - Go 1.23+
//   - Echo v4 (Web framework)
//   - CouchDB 3.3+ (Database)
//   - Kivik (CouchDB client)
//   - GNS3 controller API v2 (Network emulation)
//   - Eclipse Paho (MQTT event publishing)
//
// # License
//
// Emulium is open source software.
package emulium
