package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/x-xyz/goauction/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second
	connectTimeout  = 10 * time.Second
)

// Config mirrors the mongo config block
type Config struct {
	URI        string
	AuthDBName string
	DBName     string
	SSL        bool
	// Majority waits for a majority of the replica set on every write
	Majority bool
	// PoolMultiplier sizes the pool per cpu, split over the hosts of the uri
	PoolMultiplier float64
}

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// MustConnectMongoClient panics when mongo can't be reached
func MustConnectMongoClient(cfg Config) *Client {
	cli, err := ConnectMongoClient(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": cfg.URI, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

func clientOptions(cfg Config) (*options.ClientOptions, connstring.ConnString, error) {
	conn, err := connstring.Parse(cfg.URI)
	if err != nil {
		return nil, conn, err
	}

	opts := options.Client().ApplyURI(cfg.URI).SetSocketTimeout(mgSocketTimeout).SetRetryWrites(true)

	// credentials in the uri authenticate against AuthDBName unless the uri names one
	if conn.Username != "" && conn.AuthSource == "" {
		opts.SetAuth(options.Credential{
			AuthMechanism:           conn.AuthMechanism,
			AuthMechanismProperties: conn.AuthMechanismProperties,
			Username:                conn.Username,
			Password:                conn.Password,
			PasswordSet:             conn.PasswordSet,
			AuthSource:              cfg.AuthDBName,
		})
	}

	// every host keeps its own pool
	multiplier := cfg.PoolMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	hosts := len(conn.Hosts)
	if hosts == 0 {
		hosts = 1
	}
	poolSize := int(float64(runtime.NumCPU()) * multiplier)
	poolSize = (poolSize + hosts - 1) / hosts
	if poolSize < 1 {
		poolSize = 1
	}
	opts.SetMinPoolSize(uint64(poolSize / 4))
	opts.SetMaxPoolSize(uint64(poolSize))

	if cfg.SSL {
		opts.SetTLSConfig(&tls.Config{})
	}
	if cfg.Majority {
		opts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}
	return opts, conn, nil
}

// ConnectMongoClient connects and checks the database is usable. Auction state changes run
// in multi-document transactions, which need a replica set, so a standalone server only
// gets a warning and transactions will fail at runtime.
func ConnectMongoClient(cfg Config) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	opts, conn, err := clientOptions(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"dbName": cfg.DBName, "err": err}).Error("fail to parse connstring")
		return nil, err
	}
	logger := log.Log().WithFields(log.Fields{"mongoHosts": conn.Hosts, "dbName": cfg.DBName})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.WithField("err", err).Error("fail to connect mongo db")
		return nil, err
	}

	if _, err := client.Database(cfg.DBName).ListCollectionNames(ctx, bson.D{}); err != nil {
		logger.WithField("err", err).Error("fail to test mongo db")
		_ = client.Disconnect(ctx)
		return nil, err
	}

	var hello struct {
		SetName string `bson:"setName"`
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "isMaster", Value: 1}}).Decode(&hello); err != nil {
		logger.WithField("err", err).Warn("fail to read replica set")
	} else if hello.SetName == "" {
		logger.Warn("mongo is not a replica set, transactions are unavailable")
	}

	logger.WithField("replicaSet", hello.SetName).Info("mongo connected")
	return &Client{
		Client: client,
		DbName: cfg.DBName,
	}, nil
}

// Close disconnects the client, waiting for in-flight operations until ctx is done
func (c *Client) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
