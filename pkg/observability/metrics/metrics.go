package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	recordsIngested     atomic.Int64
	trainingsCompleted  atomic.Int64
	trainingsFailed     atomic.Int64
	predictionsServed   atomic.Int64
	assessmentsServed   atomic.Int64
	federatedExchanges  atomic.Int64
	preprocessedBatches atomic.Int64
)

func IncRecordsIngested()     { recordsIngested.Add(1) }
func IncTrainingsCompleted()  { trainingsCompleted.Add(1) }
func IncTrainingsFailed()     { trainingsFailed.Add(1) }
func IncPredictionsServed()   { predictionsServed.Add(1) }
func IncAssessmentsServed()   { assessmentsServed.Add(1) }
func IncFederatedExchanges()  { federatedExchanges.Add(1) }
func IncPreprocessedBatches() { preprocessedBatches.Add(1) }

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeCounter(w, "healthpulse_records_ingested_total", "Number of health records ingested since process start.", recordsIngested.Load())
	writeCounter(w, "healthpulse_trainings_completed_total", "Number of model training runs completed since process start.", trainingsCompleted.Load())
	writeCounter(w, "healthpulse_trainings_failed_total", "Number of model training runs failed since process start.", trainingsFailed.Load())
	writeCounter(w, "healthpulse_predictions_served_total", "Number of risk predictions served since process start.", predictionsServed.Load())
	writeCounter(w, "healthpulse_assessments_served_total", "Number of batch health assessments served since process start.", assessmentsServed.Load())
	writeCounter(w, "healthpulse_federated_exchanges_total", "Number of federated train/update/predict calls since process start.", federatedExchanges.Load())
	writeCounter(w, "healthpulse_preprocessed_batches_total", "Number of preprocessing batch runs since process start.", preprocessedBatches.Load())
}

func writeCounter(w http.ResponseWriter, name, help string, value int64) {
	fmt.Fprintf(w, "# HELP %s %s\n", name, help)
	fmt.Fprintf(w, "# TYPE %s counter\n", name)
	fmt.Fprintf(w, "%s %d\n", name, value)
}
