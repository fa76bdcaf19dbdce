// Command genevents generates mock shipment tracking updates as JSON lines,
// suitable for piping into a Kafka console producer to seed the source topic.
//
// Usage:
//
//	go run ./cmd/genevents -n 50 | kafka-console-producer --topic raw-tracking-updates ...
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/couchcryptid/shipment-tracking-etl/internal/domain"
)

var statuses = []string{
	domain.StatusCreated,
	domain.StatusInTransit,
	domain.StatusInTransit,
	domain.StatusOutForDelivery,
	domain.StatusDelivered,
	domain.StatusException,
}

var carriers = []string{"DHL", "UPS", "FedEx", "USPS", "DPD"}

// hubs mixes US, European, and Asian locations so generated data exercises
// every regional fallback branch when geocoding is unavailable.
var hubs = []string{
	"Frankfurt Hub, Germany",
	"Paris Distribution Center, France",
	"London Gateway, UK",
	"Shanghai Port, China",
	"Narita Cargo Terminal, Japan",
	"Mumbai Logistics Park, India",
	"Memphis SuperHub, TN",
	"Louisville Worldport, KY",
}

func main() {
	count := flag.Int("n", 20, "number of updates to generate")
	seed := flag.Int64("seed", 0, "random seed (0 = non-deterministic)")
	flag.Parse()

	faker := gofakeit.New(*seed)

	enc := json.NewEncoder(os.Stdout)
	for i := 0; i < *count; i++ {
		update := domain.TrackingUpdate{
			ShipmentID:      fmt.Sprintf("SHP-%06d", faker.Number(1, 999999)),
			Carrier:         carriers[faker.Number(0, len(carriers)-1)],
			Status:          statuses[faker.Number(0, len(statuses)-1)],
			Origin:          fmt.Sprintf("%s, %s", faker.City(), faker.StateAbr()),
			Destination:     fmt.Sprintf("%s %s, %s", faker.StreetNumber(), faker.StreetName(), faker.City()),
			CurrentLocation: hubs[faker.Number(0, len(hubs)-1)],
			RecipientName:   faker.Name(),
			RecipientEmail:  faker.Email(),
			Time:            fmt.Sprintf("%02d%02d", faker.Number(0, 23), faker.Number(0, 59)),
		}
		if err := enc.Encode(update); err != nil {
			fmt.Fprintf(os.Stderr, "encode update: %v\n", err)
			os.Exit(1)
		}
	}
}
