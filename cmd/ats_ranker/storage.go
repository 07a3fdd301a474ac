package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/storage"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Store a file privately under resumes/",
	RunE:  runUpload,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a stored object",
	RunE:  runDelete,
}

var presignCmd = &cobra.Command{
	Use:   "presign",
	Short: "Print a time-limited URL for a stored object",
	RunE:  runPresign,
}

var (
	uploadInput       string
	uploadContentType string
	deleteRef         string
	presignRef        string
	presignTTL        string
)

func init() {
	uploadCmd.Flags().StringVarP(&uploadInput, "in", "i", "", "Path to file to upload (required)")
	uploadCmd.Flags().StringVar(&uploadContentType, "content-type", "", "Content type (default: detected from content)")
	if err := uploadCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	deleteCmd.Flags().StringVar(&deleteRef, "ref", "", "Object reference or key (required)")
	if err := deleteCmd.MarkFlagRequired("ref"); err != nil {
		panic(fmt.Sprintf("failed to mark ref flag as required: %v", err))
	}

	presignCmd.Flags().StringVar(&presignRef, "ref", "", "Object reference or key (required)")
	presignCmd.Flags().StringVar(&presignTTL, "ttl", "", "URL lifetime, e.g. 15m (default from config)")
	if err := presignCmd.MarkFlagRequired("ref"); err != nil {
		panic(fmt.Sprintf("failed to mark ref flag as required: %v", err))
	}

	rootCmd.AddCommand(uploadCmd, deleteCmd, presignCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runUpload(cmd *cobra.Command, _ []string) error {
	store, err := storeFactory(currentConfig())
	if err != nil {
		return err
	}

	data, err := os.ReadFile(uploadInput)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", uploadInput, err)
	}
	contentType := uploadContentType
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	ref, err := store.Put(commandContext(cmd), data, filepath.Base(uploadInput), contentType)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), ref)
	return nil
}

func runDelete(cmd *cobra.Command, _ []string) error {
	store, err := storeFactory(currentConfig())
	if err != nil {
		return err
	}
	if err := store.Delete(commandContext(cmd), storage.Reference(deleteRef)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", deleteRef)
	return nil
}

func runPresign(cmd *cobra.Command, _ []string) error {
	cfg := *currentConfig()
	if presignTTL != "" {
		cfg.PresignTTL = presignTTL
	}
	ttl, err := cfg.PresignTTLDuration()
	if err != nil {
		return err
	}

	store, err := storeFactory(&cfg)
	if err != nil {
		return err
	}
	url, err := store.Presign(commandContext(cmd), storage.Reference(presignRef), ttl)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}
