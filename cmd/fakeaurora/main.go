package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/ngerakines/aurora/client"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	listenHost string
	port       int
	token      string
	panels     int
	rhythm     bool
)

var rootCmd = &cobra.Command{
	Use:   "fakeaurora",
	Short: "fakeaurora serves an in-memory controller API for development.",
	RunE: func(cmd *cobra.Command, args []string) error {
		streamConn, err := net.ListenPacket("udp", net.JoinHostPort(listenHost, "0"))
		if err != nil {
			return err
		}
		defer streamConn.Close()
		go listenStream(streamConn)

		ctrl := newController(token, panels, rhythm, streamConn.LocalAddr().(*net.UDPAddr))
		server := &http.Server{
			Addr:    net.JoinHostPort(listenHost, strconv.Itoa(port)),
			Handler: ctrl,
		}

		go func() {
			log.WithFields(log.Fields{
				"addr":   server.Addr,
				"stream": streamConn.LocalAddr().String(),
			}).Info("fake controller listening")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Fatal("server failed")
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("Gracefully stopping fake controller.")
		return server.Shutdown(ctx)
	},
}

func main() {
	rootCmd.Flags().StringVar(&listenHost, "host", "127.0.0.1", "address to listen on")
	rootCmd.Flags().IntVar(&port, "port", client.DefaultPort, "HTTP port")
	rootCmd.Flags().StringVar(&token, "token", "fake-token", "auth token to accept")
	rootCmd.Flags().IntVar(&panels, "panels", 9, "number of lighting panels")
	rootCmd.Flags().BoolVar(&rhythm, "rhythm", true, "attach a rhythm module")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
