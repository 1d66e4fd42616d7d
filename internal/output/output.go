// Package output delivers pipeline results to downstream consumers: a
// console or newline-delimited JSON file for ad-hoc runs, Kafka for anyone
// subscribing to the daily totals, and a parquet cache for re-runs.
package output

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/IBM/sarama"

	"github.com/pitcast/pitcast/internal/models"
)

type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// dailyTotalsRecord is the wire shape for one aggregated day.
type dailyTotalsRecord struct {
	Date       string   `json:"date"`
	PulledPork float64  `json:"pulled_pork"`
	Brisket    float64  `json:"brisket"`
	TriTip     float64  `json:"tri_tip"`
	Ends       float64  `json:"ends"`
	Turkey     float64  `json:"turkey"`
	Null       float64  `json:"null"`
	Chickens   float64  `json:"chickens"`
	Ribs       float64  `json:"ribs"`
	High       *float64 `json:"high,omitempty"`
}

func recordFor(d models.DailyTotals) dailyTotalsRecord {
	return dailyTotalsRecord{
		Date:       d.Date.Format("2006-01-02"),
		PulledPork: d.Weights[models.CategoryPulledPork],
		Brisket:    d.Weights[models.CategoryBrisket],
		TriTip:     d.Weights[models.CategoryTriTip],
		Ends:       d.Weights[models.CategoryEnds],
		Turkey:     d.Weights[models.CategoryTurkey],
		Null:       d.Weights[models.CategoryNull],
		Chickens:   d.Chickens,
		Ribs:       d.Ribs,
		High:       d.High,
	}
}

// WriteSeries sends every row of the series to the destination under one topic.
func WriteSeries(dest OutputDestination, topic string, series models.Series) error {
	for _, row := range series {
		msg, err := json.Marshal(recordFor(row))
		if err != nil {
			return fmt.Errorf("encoding daily totals for %s: %w", row.Date.Format("2006-01-02"), err)
		}
		if err := dest.WriteMessage(topic, msg); err != nil {
			return err
		}
	}
	return nil
}

type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	_, err := fmt.Fprintf(os.Stdout, "[%s] %s\n", topic, string(msg))
	return err
}

func (c *ConsoleOutput) Close() error { return nil }

// JSONOutput appends newline-delimited JSON to one file per topic under basePath.
type JSONOutput struct {
	basePath string
	files    map[string]*os.File
}

func NewJSONOutput(basePath string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	file, ok := j.files[topic]
	if !ok {
		if err := os.MkdirAll(j.basePath, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.Create(filepath.Join(j.basePath, topic+".json"))
		if err != nil {
			return fmt.Errorf("failed to create file for topic %s: %w", topic, err)
		}
		j.files[topic] = file
	}

	if _, err := file.Write(msg); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	_, err := file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

type KafkaOutput struct {
	producer sarama.SyncProducer
}

func NewKafkaOutput(brokers []string) (*KafkaOutput, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Printf("Sarama producer created successfully with brokers %v", brokers)
	return &KafkaOutput{producer: producer}, nil
}

func (k *KafkaOutput) WriteMessage(topic string, msg []byte) error {
	if k.producer == nil {
		return fmt.Errorf("Sarama producer is not initialized")
	}
	_, _, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		log.Printf("Failed to send message to topic %s: %v", topic, err)
		return err
	}
	return nil
}

func (k *KafkaOutput) Close() error {
	if k.producer != nil {
		return k.producer.Close()
	}
	return nil
}
