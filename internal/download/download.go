// Package download fetches release assets over HTTP with a small worker
// pool. Files land next to their final path via a temp file and rename, so a
// failed download never leaves a truncated asset behind.
package download

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

// Job is one file to fetch.
type Job struct {
	URL      string
	DestPath string
}

// Result pairs a job with its outcome.
type Result struct {
	Job   Job
	Error error
}

// Downloader runs download jobs in parallel.
type Downloader struct {
	workers int
	client  *http.Client
}

// NewDownloader creates a downloader with the given parallelism.
func NewDownloader(workers int) *Downloader {
	if workers < 1 {
		workers = 1
	}
	return &Downloader{workers: workers, client: &http.Client{}}
}

// Download fetches all jobs and returns one result per job. Order of results
// is not guaranteed to match the job order.
func (d *Downloader) Download(jobs []Job) []Result {
	jobChan := make(chan Job, len(jobs))
	resultChan := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				resultChan <- Result{Job: job, Error: d.downloadOne(job)}
			}
		}()
	}

	for _, job := range jobs {
		jobChan <- job
	}
	close(jobChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, 0, len(jobs))
	for result := range resultChan {
		results = append(results, result)
	}
	return results
}

func (d *Downloader) downloadOne(job Job) error {
	// Already downloaded in a previous run.
	if _, err := os.Stat(job.DestPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(job.DestPath), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	resp, err := d.client.Get(job.URL)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", job.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: HTTP %d", job.URL, resp.StatusCode)
	}

	tmpPath := job.DestPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	_, err = io.Copy(out, resp.Body)
	out.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing file: %w", err)
	}

	if err := os.Rename(tmpPath, job.DestPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming file: %w", err)
	}
	return nil
}
