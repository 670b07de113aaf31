package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/loomui/loom"
	"github.com/loomui/loom/pkg/memdom"
	"github.com/loomui/loom/pkg/metrics"
	"github.com/loomui/loom/pkg/server"
	"github.com/loomui/loom/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo counter app",
		Long: `Starts the live session server with a demo counter component.
Open the printed address in a browser; every connection gets its own
counter instance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			m := metrics.New()

			srv := server.New(server.Config{
				NewApp: func(doc *memdom.Document) *loom.App {
					return loom.New[counter](doc, counterProps{Step: 1}, loom.Config{
						Logger:  logger,
						Metrics: m,
					})
				},
				Logger:  logger,
				Metrics: m,
			})

			logger.Info("serving demo app", "addr", addr)
			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")

	return cmd
}

type counterProps struct {
	Step int
}

// counter is the demo component: a button that counts its own clicks.
type counter struct {
	vdom.Core[counterProps]
	clicks int
}

func (c *counter) Render() *vdom.VNode {
	return vdom.El("div",
		vdom.Class("counter"),
		vdom.El("button",
			vdom.On("click", func() {
				c.SetState(func() { c.clicks += c.Props().Step })
			}),
			vdom.Textf("Clicked %d times", c.clicks),
		),
	)
}
