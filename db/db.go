// Package db stores incidents and resources in Firestore.
package db

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

var (
	ErrNoCredentials = errors.New("FIREBASE_CREDENTIALS is not set")
	ErrClientClosed  = errors.New("firestore client is closed")
)

// FirestoreClient is a singleton Firestore client instance.
var (
	clientMu   sync.Mutex
	client     *firestore.Client
	clientErr  error
	clientOnce sync.Once
)

// InitFirestore initializes and returns the shared Firestore client from
// base64-encoded service account credentials.
func InitFirestore(encodedCreds string) (*firestore.Client, error) {
	clientOnce.Do(func() {
		c, err := newFirestore(encodedCreds)
		clientMu.Lock()
		client, clientErr = c, err
		clientMu.Unlock()
	})

	clientMu.Lock()
	defer clientMu.Unlock()
	return client, clientErr
}

func newFirestore(encodedCreds string) (*firestore.Client, error) {
	creds, err := decodeCredentials(encodedCreds)
	if err != nil {
		return nil, err
	}

	// Initialize Firebase App
	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firestore: %w", err)
	}

	c, err := app.Firestore(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}
	log.Println("[db] Firestore client ready")
	return c, nil
}

// CloseFirestore closes the Firestore client. Later InitFirestore calls
// return ErrClientClosed.
func CloseFirestore() {
	clientMu.Lock()
	defer clientMu.Unlock()
	if client != nil {
		client.Close()
		client, clientErr = nil, ErrClientClosed
	}
}

func decodeCredentials(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrNoCredentials
	}
	creds, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Firestore credentials: %w", err)
	}
	return creds, nil
}
