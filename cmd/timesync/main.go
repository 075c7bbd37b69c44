// timesync keeps the clock of a capture host aligned with the recording
// workstation. Pose frames are timestamped locally, so hosts that drift
// produce unusable sessions.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogf/gf/v2/os/gproc"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var globalErrCnt = 1
var globalSyncSuccess = true
var globalSyncSuccessTS = time.Date(0, 0, 0, 0, 0, 0, 0, time.UTC)

const maxSyncRetry = 3
const syncRetryIntervalS = 5
const syncReTriggerIntervalM = 300
const ntpdateCmd = "ntpdate"

var managedBlockRe = regexp.MustCompile(`# MANAGED BY GOTRAK\r?\nserver\s([^\s]*)\siburst\r?\n# MANAGED BY GOTRAK`)

type NTPDConf struct {
	Server string `json:"server"`
}

var lock = &sync.Mutex{}

func execNTPUpdate(hostname string) (string, error) {
	lock.Lock()
	defer lock.Unlock()
	output, err := gproc.ShellExec(context.Background(), ntpdateCmd+" "+hostname)
	return output, err
}

func setup(serverAddress string) {
	for range [maxSyncRetry]struct{}{} {
		output, err := execNTPUpdate(serverAddress)
		if err == nil {
			globalSyncSuccess = true
			globalSyncSuccessTS = time.Now()
			return
		}
		log.Info("The " + strconv.Itoa(globalErrCnt) + "th sync trial to " + serverAddress + " failed: " + output + ". Wait 5 seconds")
		time.Sleep(syncRetryIntervalS * time.Second)
		globalErrCnt++
	}
	globalSyncSuccess = false
	globalSyncSuccessTS = time.Date(0, 0, 0, 0, 0, 0, 0, time.UTC)
}

func readNTPServerFromConfig(ntpdConfPath string) (string, error) {
	bytes, err := os.ReadFile(ntpdConfPath)
	if err != nil {
		return "", err
	}
	matches := managedBlockRe.FindStringSubmatch(string(bytes))
	if len(matches) < 2 {
		return "", fmt.Errorf("no server address found in ntp.conf")
	}
	return matches[1], nil
}

func writeNTPServerToConfig(ntpdConfPath string, server string) error {
	bytes, err := os.ReadFile(ntpdConfPath)
	if err != nil {
		return err
	}
	block := "# MANAGED BY GOTRAK\nserver " + server + " iburst\n# MANAGED BY GOTRAK"
	newStr := ""
	if managedBlockRe.MatchString(string(bytes)) {
		newStr = managedBlockRe.ReplaceAllString(string(bytes), block)
	} else {
		newStr = string(bytes) + "\n" + block
	}
	return os.WriteFile(ntpdConfPath, []byte(newStr), 0644)
}

func _main(cmd *cobra.Command) (err error) {
	serverHostname, _ := cmd.Flags().GetString("server")
	listenPort, _ := cmd.Flags().GetInt("port")
	ntpdConfPath, _ := cmd.Flags().GetString("ntpd_config_path")
	log.Info("NTP server:", serverHostname)
	log.Info("NTPD config path:", ntpdConfPath)

	go func() {
		for {
			setup(serverHostname)
			time.Sleep(syncReTriggerIntervalM * time.Minute)
		}
	}()

	router := gin.Default()

	router.GET("/time-sync", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"globalErrCnt":        globalErrCnt,
			"globalSyncSuccess":   globalSyncSuccess,
			"globalSyncSuccessTS": globalSyncSuccessTS.Unix(),
		})
	})

	router.GET("/ntpd-config", func(c *gin.Context) {
		addr, err := readNTPServerFromConfig(ntpdConfPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"err":  err.Error(),
				"addr": nil,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"err":  nil,
			"addr": addr,
		})
	})

	router.POST("/time-sync", func(c *gin.Context) {
		output, err := execNTPUpdate(serverHostname)
		if err != nil {
			globalErrCnt++
			c.JSON(http.StatusInternalServerError, gin.H{
				"err": err.Error(),
				"msg": "Synchronization failed: " + output,
			})
		} else {
			globalSyncSuccessTS = time.Now()
			globalSyncSuccess = true
			c.JSON(http.StatusOK, gin.H{
				"err": nil,
				"msg": "Synchronization success",
			})
		}
	})

	router.PUT("/ntpd-config", func(c *gin.Context) {
		req := NTPDConf{}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"err": err.Error(),
			})
			return
		}
		serverHostname = req.Server
		if err := writeNTPServerToConfig(ntpdConfPath, serverHostname); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"err": err.Error(),
			})
			return
		}
		if _, err := gproc.ShellExec(context.Background(), "systemctl restart ntpd"); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"err": err.Error(),
				"msg": "The NTP server address now is set as: " + serverHostname,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"err": nil,
			"msg": "The NTP server address now is set as: " + serverHostname,
		})
	})

	return router.Run(":" + strconv.Itoa(listenPort))
}

var rootCmd = &cobra.Command{
	Use:   "timesync",
	Short: "ntp synchronizer between capture hosts",
	Long:  "This program keeps capture hosts synchronized to one NTP server so that frame timestamps are comparable across machines",
	Run: func(cmd *cobra.Command, args []string) {
		if err := _main(cmd); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func main() {
	rootCmd.Flags().String("server", "pool.ntp.org", "NTP server's hostname")
	rootCmd.Flags().Int("port", 8080, "port number")
	rootCmd.Flags().String("ntpd_config_path", "/etc/ntpsec/ntp.conf", "ntpd's config path")
	rootCmd.Flags().Bool("debug", false, "toggle debug logging")
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
